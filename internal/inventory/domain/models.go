// Package domain contains bookable inventory: hotel room blocks, activity
// allotments and flight seat stock bought from suppliers.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ItemType classifies what kind of stock an inventory row holds.
type ItemType string

const (
	ItemTypeActivities ItemType = "Activities"
	ItemTypeHotel      ItemType = "Hotel"
	ItemTypeFlights    ItemType = "Flights"
	ItemTypeOther      ItemType = "Other"
)

// InventoryItem is a stock line. The per-kind price columns are nullable;
// only the ones matching ItemType are meaningful (price per night for
// hotels, child/adult prices for activities).
type InventoryItem struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"type:text;not null" json:"name"`
	ItemType      ItemType         `gorm:"type:text;not null;default:'Other'" json:"item_type"`
	Quantity      int64            `gorm:"not null;default:0" json:"quantity"`
	PricePerUnit  decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"price_per_unit"`
	PricePerNight *decimal.Decimal `gorm:"type:decimal(18,4)" json:"price_per_night,omitempty"`
	PricePerChild *decimal.Decimal `gorm:"type:decimal(18,4)" json:"price_per_child,omitempty"`
	PricePerAdult *decimal.Decimal `gorm:"type:decimal(18,4)" json:"price_per_adult,omitempty"`
	SupplierID    *snowflake.ID    `gorm:"index" json:"supplier_id,omitempty"`
	SupplierName  string           `gorm:"type:text;not null;default:''" json:"supplier_name"`
	Description   string           `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt     time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt    time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy     string           `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy    string           `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (InventoryItem) TableName() string { return "inventory_items" }

type CreateItemRequest struct {
	Name          string           `json:"name"`
	ItemType      ItemType         `json:"item_type"`
	Quantity      int64            `json:"quantity"`
	PricePerUnit  decimal.Decimal  `json:"price_per_unit"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	PricePerChild *decimal.Decimal `json:"price_per_child"`
	PricePerAdult *decimal.Decimal `json:"price_per_adult"`
	SupplierID    string           `json:"supplier_id"`
	SupplierName  string           `json:"supplier_name"`
	Description   string           `json:"description"`
}

type UpdateItemRequest struct {
	Name          *string          `json:"name"`
	ItemType      *ItemType        `json:"item_type"`
	Quantity      *int64           `json:"quantity"`
	PricePerUnit  *decimal.Decimal `json:"price_per_unit"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	PricePerChild *decimal.Decimal `json:"price_per_child"`
	PricePerAdult *decimal.Decimal `json:"price_per_adult"`
	SupplierName  *string          `json:"supplier_name"`
	Description   *string          `json:"description"`
}

type ListItemRequest struct {
	pagination.Pagination
	Name     string
	ItemType string
}

type ListItemResponse struct {
	pagination.PageInfo
	Items []InventoryItem `json:"items"`
}

type Service interface {
	Create(ctx context.Context, req CreateItemRequest, actor string) (InventoryItem, error)
	Update(ctx context.Context, id string, req UpdateItemRequest, actor string) (InventoryItem, error)
	GetByID(ctx context.Context, id string) (InventoryItem, error)
	List(ctx context.Context, req ListItemRequest) (ListItemResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidID       = errors.New("invalid_inventory_id")
	ErrInvalidName     = errors.New("invalid_inventory_name")
	ErrInvalidQuantity = errors.New("invalid_inventory_quantity")
	ErrInvalidPrice    = errors.New("invalid_inventory_price")
	ErrInvalidItemType = errors.New("invalid_inventory_item_type")
	ErrItemNotFound    = errors.New("inventory_item_not_found")
)
