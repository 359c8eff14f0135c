// Package domain contains the tour catalog model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TourCategory buckets tours for the marketing site filters.
type TourCategory string

const (
	TourCategoryKids       TourCategory = "kids"
	TourCategoryAdult      TourCategory = "adult"
	TourCategoryRomantic   TourCategory = "romantic"
	TourCategoryStaycation TourCategory = "staycation"
	TourCategoryAdventure  TourCategory = "adventure"
)

// ValidCategory reports whether the category is one of the known buckets.
func ValidCategory(c TourCategory) bool {
	switch c {
	case TourCategoryKids, TourCategoryAdult, TourCategoryRomantic, TourCategoryStaycation, TourCategoryAdventure:
		return true
	default:
		return false
	}
}

// Tour is a published tour package.
type Tour struct {
	ID              snowflake.ID                `gorm:"primaryKey" json:"id"`
	Title           string                      `gorm:"type:text;not null" json:"title"`
	Description     string                      `gorm:"type:text;not null;default:''" json:"description"`
	Price           decimal.Decimal             `gorm:"type:decimal(18,4);not null;default:0" json:"price"`
	Emirate         string                      `gorm:"type:text;not null;default:''" json:"emirate"`
	Category        TourCategory                `gorm:"type:text;not null" json:"category"`
	Thumbnail       string                      `gorm:"type:text;not null;default:''" json:"thumbnail"`
	Gallery         datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"gallery"`
	WhatsappContact string                      `gorm:"type:text;not null;default:''" json:"whatsapp_contact"`
	CreatedAt       time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt      time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy       string                      `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy      string                      `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (Tour) TableName() string { return "tours" }

type CreateTourRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Emirate         string          `json:"emirate"`
	Category        TourCategory    `json:"category"`
	Thumbnail       string          `json:"thumbnail"`
	Gallery         []string        `json:"gallery"`
	WhatsappContact string          `json:"whatsapp_contact"`
}

type UpdateTourRequest struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Emirate         *string          `json:"emirate"`
	Category        *TourCategory    `json:"category"`
	Thumbnail       *string          `json:"thumbnail"`
	Gallery         []string         `json:"gallery"`
	WhatsappContact *string          `json:"whatsapp_contact"`
}

type Service interface {
	Create(ctx context.Context, req CreateTourRequest, actor string) (Tour, error)
	Update(ctx context.Context, id string, req UpdateTourRequest, actor string) (Tour, error)
	GetByID(ctx context.Context, id string) (Tour, error)
	List(ctx context.Context, emirate, category string) ([]Tour, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID       = errors.New("invalid_tour_id")
	ErrInvalidTitle    = errors.New("invalid_tour_title")
	ErrInvalidPrice    = errors.New("invalid_tour_price")
	ErrInvalidCategory = errors.New("invalid_tour_category")
	ErrTourNotFound    = errors.New("tour_not_found")
)
