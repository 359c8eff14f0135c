// Package service implements inventory stock management backed by gorm.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anish-1308/ibilling/internal/clock"
	invdomain "github.com/anish-1308/ibilling/internal/inventory/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p ServiceParam) invdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("inventory.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func validItemType(t invdomain.ItemType) bool {
	switch t {
	case invdomain.ItemTypeActivities, invdomain.ItemTypeHotel, invdomain.ItemTypeFlights, invdomain.ItemTypeOther:
		return true
	default:
		return false
	}
}

func (s *Service) Create(ctx context.Context, req invdomain.CreateItemRequest, actor string) (invdomain.InventoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidName
	}
	if req.Quantity < 0 {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidQuantity
	}
	if req.PricePerUnit.IsNegative() {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
	}
	itemType := req.ItemType
	if itemType == "" {
		itemType = invdomain.ItemTypeOther
	}
	if !validItemType(itemType) {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidItemType
	}
	if req.PricePerNight != nil && req.PricePerNight.IsNegative() {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
	}
	if req.PricePerChild != nil && req.PricePerChild.IsNegative() {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
	}
	if req.PricePerAdult != nil && req.PricePerAdult.IsNegative() {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
	}

	var supplierID *snowflake.ID
	if raw := strings.TrimSpace(req.SupplierID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidID
		}
		supplierID = &parsed
	}

	now := s.clock.Now()
	item := invdomain.InventoryItem{
		ID:            s.genID.Generate(),
		Name:          name,
		ItemType:      itemType,
		Quantity:      req.Quantity,
		PricePerUnit:  req.PricePerUnit,
		PricePerNight: req.PricePerNight,
		PricePerChild: req.PricePerChild,
		PricePerAdult: req.PricePerAdult,
		SupplierID:    supplierID,
		SupplierName:  strings.TrimSpace(req.SupplierName),
		Description:   strings.TrimSpace(req.Description),
		CreatedAt:     now,
		ModifiedAt:    now,
		CreatedBy:     actor,
		ModifiedBy:    actor,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return invdomain.InventoryItem{}, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req invdomain.UpdateItemRequest, actor string) (invdomain.InventoryItem, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidID
	}

	var item invdomain.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invdomain.InventoryItem{}, invdomain.ErrItemNotFound
		}
		return invdomain.InventoryItem{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.ItemType != nil {
		if !validItemType(*req.ItemType) {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidItemType
		}
		item.ItemType = *req.ItemType
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		if req.PricePerUnit.IsNegative() {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
		}
		item.PricePerUnit = *req.PricePerUnit
	}
	if req.PricePerNight != nil {
		if req.PricePerNight.IsNegative() {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
		}
		item.PricePerNight = req.PricePerNight
	}
	if req.PricePerChild != nil {
		if req.PricePerChild.IsNegative() {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
		}
		item.PricePerChild = req.PricePerChild
	}
	if req.PricePerAdult != nil {
		if req.PricePerAdult.IsNegative() {
			return invdomain.InventoryItem{}, invdomain.ErrInvalidPrice
		}
		item.PricePerAdult = req.PricePerAdult
	}
	if req.SupplierName != nil {
		item.SupplierName = strings.TrimSpace(*req.SupplierName)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}

	item.ModifiedAt = s.clock.Now()
	item.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return invdomain.InventoryItem{}, err
	}
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invdomain.InventoryItem, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invdomain.InventoryItem{}, invdomain.ErrInvalidID
	}
	var item invdomain.InventoryItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invdomain.InventoryItem{}, invdomain.ErrItemNotFound
		}
		return invdomain.InventoryItem{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, req invdomain.ListItemRequest) (invdomain.ListItemResponse, error) {
	limit, offset := pagination.Resolve(req.Pagination)

	query := s.db.WithContext(ctx).Model(&invdomain.InventoryItem{})
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if itemType := strings.TrimSpace(req.ItemType); itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return invdomain.ListItemResponse{}, err
	}

	var items []invdomain.InventoryItem
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return invdomain.ListItemResponse{}, err
	}

	return invdomain.ListItemResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, limit, total),
			TotalCount:    total,
		},
		Items: items,
	}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	itemID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).Delete(&invdomain.InventoryItem{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return invdomain.ErrItemNotFound
	}
	return nil
}
