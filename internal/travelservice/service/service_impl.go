// Package service implements the travel service catalog backed by gorm.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anish-1308/ibilling/internal/clock"
	tsdomain "github.com/anish-1308/ibilling/internal/travelservice/domain"
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

func NewService(p ServiceParam) tsdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("travelservice.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req tsdomain.CreateServiceRequest, actor string) (tsdomain.TravelService, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return tsdomain.TravelService{}, tsdomain.ErrInvalidName
	}
	if req.Price.IsNegative() {
		return tsdomain.TravelService{}, tsdomain.ErrInvalidPrice
	}
	if !tsdomain.ValidCategory(req.Category) {
		return tsdomain.TravelService{}, tsdomain.ErrInvalidCategory
	}

	now := s.clock.Now()
	svc := tsdomain.TravelService{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Category:    req.Category,
		CreatedAt:   now,
		ModifiedAt:  now,
		CreatedBy:   actor,
		ModifiedBy:  actor,
	}
	if err := s.db.WithContext(ctx).Create(&svc).Error; err != nil {
		return tsdomain.TravelService{}, err
	}
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id string, req tsdomain.UpdateServiceRequest, actor string) (tsdomain.TravelService, error) {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tsdomain.TravelService{}, tsdomain.ErrInvalidID
	}

	var svc tsdomain.TravelService
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tsdomain.TravelService{}, tsdomain.ErrServiceNotFound
		}
		return tsdomain.TravelService{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return tsdomain.TravelService{}, tsdomain.ErrInvalidName
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return tsdomain.TravelService{}, tsdomain.ErrInvalidPrice
		}
		svc.Price = *req.Price
	}
	if req.Category != nil {
		if !tsdomain.ValidCategory(*req.Category) {
			return tsdomain.TravelService{}, tsdomain.ErrInvalidCategory
		}
		svc.Category = *req.Category
	}

	svc.ModifiedAt = s.clock.Now()
	svc.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&svc).Error; err != nil {
		return tsdomain.TravelService{}, err
	}
	return svc, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (tsdomain.TravelService, error) {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tsdomain.TravelService{}, tsdomain.ErrInvalidID
	}
	var svc tsdomain.TravelService
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tsdomain.TravelService{}, tsdomain.ErrServiceNotFound
		}
		return tsdomain.TravelService{}, err
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context, category string) ([]tsdomain.TravelService, error) {
	query := s.db.WithContext(ctx).Model(&tsdomain.TravelService{})
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}
	var services []tsdomain.TravelService
	if err := query.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	serviceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tsdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).Delete(&tsdomain.TravelService{}, "id = ?", serviceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tsdomain.ErrServiceNotFound
	}
	return nil
}
