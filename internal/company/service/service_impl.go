// Package service implements the company profile store.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/anish-1308/ibilling/internal/clock"
	companydomain "github.com/anish-1308/ibilling/internal/company/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

func NewService(p ServiceParam) companydomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		clock: p.Clock,
	}
}

func (s *Service) Get(ctx context.Context) (companydomain.Profile, error) {
	var profile companydomain.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", companydomain.ProfileID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return companydomain.Profile{}, companydomain.ErrProfileMissing
		}
		return companydomain.Profile{}, err
	}
	return profile, nil
}

func (s *Service) Update(ctx context.Context, req companydomain.UpdateProfileRequest, actor string) (companydomain.Profile, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return companydomain.Profile{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return companydomain.Profile{}, companydomain.ErrInvalidName
		}
		profile.Name = name
	}
	if req.Email != nil {
		profile.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		profile.Address = strings.TrimSpace(*req.Address)
	}
	if req.OwnerName != nil {
		profile.OwnerName = strings.TrimSpace(*req.OwnerName)
	}
	if req.OwnerEmail != nil {
		profile.OwnerEmail = strings.TrimSpace(*req.OwnerEmail)
	}
	if req.Logo != nil {
		profile.Logo = strings.TrimSpace(*req.Logo)
	}
	if req.TaxRate != nil {
		if req.TaxRate.IsNegative() {
			return companydomain.Profile{}, companydomain.ErrInvalidTaxRate
		}
		profile.TaxRate = *req.TaxRate
	}

	profile.ModifiedAt = s.clock.Now()
	profile.ModifiedBy = actor
	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return companydomain.Profile{}, err
	}
	return profile, nil
}

func (s *Service) TaxRate(ctx context.Context) (decimal.Decimal, error) {
	profile, err := s.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return profile.TaxRate, nil
}
