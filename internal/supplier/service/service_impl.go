// Package service implements supplier CRUD backed by gorm.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anish-1308/ibilling/internal/clock"
	supplierdomain "github.com/anish-1308/ibilling/internal/supplier/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
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

func NewService(p ServiceParam) supplierdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("supplier.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req supplierdomain.CreateSupplierRequest, actor string) (supplierdomain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return supplierdomain.Supplier{}, supplierdomain.ErrInvalidName
	}
	supplierType := strings.TrimSpace(req.Type)
	if supplierType == "" {
		supplierType = "B2B"
	}

	now := s.clock.Now()
	supplier := supplierdomain.Supplier{
		ID:         s.genID.Generate(),
		Name:       name,
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Fax:        optional(req.Fax),
		Type:       supplierType,
		AmountDue:  decimal.Zero,
		AmountPaid: decimal.Zero,
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  actor,
		ModifiedBy: actor,
	}
	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return supplierdomain.Supplier{}, err
	}
	return supplier, nil
}

func (s *Service) Update(ctx context.Context, id string, req supplierdomain.UpdateSupplierRequest, actor string) (supplierdomain.Supplier, error) {
	supplierID, err := parseID(id)
	if err != nil {
		return supplierdomain.Supplier{}, supplierdomain.ErrInvalidID
	}

	supplier, err := s.load(ctx, supplierID)
	if err != nil {
		return supplierdomain.Supplier{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return supplierdomain.Supplier{}, supplierdomain.ErrInvalidName
		}
		supplier.Name = name
	}
	if req.Phone != nil {
		supplier.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		supplier.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Fax != nil {
		supplier.Fax = optional(*req.Fax)
	}
	if req.Type != nil {
		supplier.Type = strings.TrimSpace(*req.Type)
	}

	supplier.ModifiedAt = s.clock.Now()
	supplier.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&supplier).Error; err != nil {
		return supplierdomain.Supplier{}, err
	}
	return supplier, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (supplierdomain.Supplier, error) {
	supplierID, err := parseID(id)
	if err != nil {
		return supplierdomain.Supplier{}, supplierdomain.ErrInvalidID
	}
	return s.load(ctx, supplierID)
}

func (s *Service) List(ctx context.Context, req supplierdomain.ListSupplierRequest) (supplierdomain.ListSupplierResponse, error) {
	limit, offset := pagination.Resolve(req.Pagination)

	query := s.db.WithContext(ctx).Model(&supplierdomain.Supplier{}).Where("is_deleted = ?", false)
	if name := strings.TrimSpace(req.Name); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return supplierdomain.ListSupplierResponse{}, err
	}

	var suppliers []supplierdomain.Supplier
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&suppliers).Error; err != nil {
		return supplierdomain.ListSupplierResponse{}, err
	}

	return supplierdomain.ListSupplierResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, limit, total),
			TotalCount:    total,
		},
		Suppliers: suppliers,
	}, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string, actor string) error {
	supplierID, err := parseID(id)
	if err != nil {
		return supplierdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).
		Model(&supplierdomain.Supplier{}).
		Where("id = ? AND is_deleted = ?", supplierID, false).
		Updates(map[string]any{
			"is_deleted":  true,
			"modified_at": s.clock.Now(),
			"modified_by": actor,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return supplierdomain.ErrSupplierNotFound
	}
	return nil
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (supplierdomain.Supplier, error) {
	var supplier supplierdomain.Supplier
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return supplierdomain.Supplier{}, supplierdomain.ErrSupplierNotFound
		}
		return supplierdomain.Supplier{}, err
	}
	return supplier, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
