// Package service implements the tour catalog backed by gorm.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anish-1308/ibilling/internal/clock"
	tourdomain "github.com/anish-1308/ibilling/internal/tour/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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

func NewService(p ServiceParam) tourdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tour.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req tourdomain.CreateTourRequest, actor string) (tourdomain.Tour, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return tourdomain.Tour{}, tourdomain.ErrInvalidTitle
	}
	if req.Price.IsNegative() {
		return tourdomain.Tour{}, tourdomain.ErrInvalidPrice
	}
	if !tourdomain.ValidCategory(req.Category) {
		return tourdomain.Tour{}, tourdomain.ErrInvalidCategory
	}

	now := s.clock.Now()
	tour := tourdomain.Tour{
		ID:              s.genID.Generate(),
		Title:           title,
		Description:     strings.TrimSpace(req.Description),
		Price:           req.Price,
		Emirate:         strings.TrimSpace(req.Emirate),
		Category:        req.Category,
		Thumbnail:       strings.TrimSpace(req.Thumbnail),
		Gallery:         datatypes.NewJSONSlice(req.Gallery),
		WhatsappContact: strings.TrimSpace(req.WhatsappContact),
		CreatedAt:       now,
		ModifiedAt:      now,
		CreatedBy:       actor,
		ModifiedBy:      actor,
	}
	if err := s.db.WithContext(ctx).Create(&tour).Error; err != nil {
		return tourdomain.Tour{}, err
	}
	return tour, nil
}

func (s *Service) Update(ctx context.Context, id string, req tourdomain.UpdateTourRequest, actor string) (tourdomain.Tour, error) {
	tourID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tourdomain.Tour{}, tourdomain.ErrInvalidID
	}

	var tour tourdomain.Tour
	if err := s.db.WithContext(ctx).First(&tour, "id = ?", tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tourdomain.Tour{}, tourdomain.ErrTourNotFound
		}
		return tourdomain.Tour{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return tourdomain.Tour{}, tourdomain.ErrInvalidTitle
		}
		tour.Title = title
	}
	if req.Description != nil {
		tour.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return tourdomain.Tour{}, tourdomain.ErrInvalidPrice
		}
		tour.Price = *req.Price
	}
	if req.Emirate != nil {
		tour.Emirate = strings.TrimSpace(*req.Emirate)
	}
	if req.Category != nil {
		if !tourdomain.ValidCategory(*req.Category) {
			return tourdomain.Tour{}, tourdomain.ErrInvalidCategory
		}
		tour.Category = *req.Category
	}
	if req.Thumbnail != nil {
		tour.Thumbnail = strings.TrimSpace(*req.Thumbnail)
	}
	if req.Gallery != nil {
		tour.Gallery = datatypes.NewJSONSlice(req.Gallery)
	}
	if req.WhatsappContact != nil {
		tour.WhatsappContact = strings.TrimSpace(*req.WhatsappContact)
	}

	tour.ModifiedAt = s.clock.Now()
	tour.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&tour).Error; err != nil {
		return tourdomain.Tour{}, err
	}
	return tour, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (tourdomain.Tour, error) {
	tourID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tourdomain.Tour{}, tourdomain.ErrInvalidID
	}
	var tour tourdomain.Tour
	if err := s.db.WithContext(ctx).First(&tour, "id = ?", tourID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tourdomain.Tour{}, tourdomain.ErrTourNotFound
		}
		return tourdomain.Tour{}, err
	}
	return tour, nil
}

func (s *Service) List(ctx context.Context, emirate, category string) ([]tourdomain.Tour, error) {
	query := s.db.WithContext(ctx).Model(&tourdomain.Tour{})
	if emirate = strings.TrimSpace(emirate); emirate != "" {
		query = query.Where("emirate = ?", emirate)
	}
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}
	var tours []tourdomain.Tour
	if err := query.Order("created_at DESC").Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tourID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return tourdomain.ErrInvalidID
	}
	result := s.db.WithContext(ctx).Delete(&tourdomain.Tour{}, "id = ?", tourID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tourdomain.ErrTourNotFound
	}
	return nil
}
