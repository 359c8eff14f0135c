// Package domain contains the travel service catalog model (visas,
// chauffeur hire, rentals and other non-tour offerings).
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ServiceCategory classifies a travel service offering.
type ServiceCategory string

const (
	ServiceCategoryFlight    ServiceCategory = "flight"
	ServiceCategoryVisa      ServiceCategory = "visa"
	ServiceCategoryChauffeur ServiceCategory = "chauffeur"
	ServiceCategoryRental    ServiceCategory = "rental"
	ServiceCategoryAdventure ServiceCategory = "adventure"
	ServiceCategoryPickup    ServiceCategory = "pickup"
	ServiceCategoryCustom    ServiceCategory = "custom"
)

// ValidCategory reports whether the category is a known offering class.
func ValidCategory(c ServiceCategory) bool {
	switch c {
	case ServiceCategoryFlight, ServiceCategoryVisa, ServiceCategoryChauffeur,
		ServiceCategoryRental, ServiceCategoryAdventure, ServiceCategoryPickup,
		ServiceCategoryCustom:
		return true
	default:
		return false
	}
}

// TravelService is a priced service offering.
type TravelService struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	Description string          `gorm:"type:text;not null;default:''" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"price"`
	Category    ServiceCategory `gorm:"type:text;not null" json:"category"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy   string          `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy  string          `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (TravelService) TableName() string { return "travel_services" }

type CreateServiceRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    ServiceCategory `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *ServiceCategory `json:"category"`
}

type Service interface {
	Create(ctx context.Context, req CreateServiceRequest, actor string) (TravelService, error)
	Update(ctx context.Context, id string, req UpdateServiceRequest, actor string) (TravelService, error)
	GetByID(ctx context.Context, id string) (TravelService, error)
	List(ctx context.Context, category string) ([]TravelService, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID       = errors.New("invalid_service_id")
	ErrInvalidName     = errors.New("invalid_service_name")
	ErrInvalidPrice    = errors.New("invalid_service_price")
	ErrInvalidCategory = errors.New("invalid_service_category")
	ErrServiceNotFound = errors.New("service_not_found")
)
