// Package domain contains the supplier reference data model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Supplier is a vendor the agency buys inventory from. AmountDue and
// AmountPaid track the running settlement position.
type Supplier struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"type:text;not null" json:"name"`
	Phone      string          `gorm:"type:text;not null" json:"phone"`
	Email      string          `gorm:"type:text;not null" json:"email"`
	Fax        *string         `gorm:"type:text" json:"fax,omitempty"`
	Type       string          `gorm:"type:text;not null;default:'B2B'" json:"type"`
	AmountDue  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount_due"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount_paid"`
	IsDeleted  bool            `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy  string          `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy string          `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (Supplier) TableName() string { return "suppliers" }

type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Fax   string `json:"fax"`
	Type  string `json:"type"`
}

type UpdateSupplierRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Fax   *string `json:"fax"`
	Type  *string `json:"type"`
}

type ListSupplierRequest struct {
	pagination.Pagination
	Name string
}

type ListSupplierResponse struct {
	pagination.PageInfo
	Suppliers []Supplier `json:"suppliers"`
}

type Service interface {
	Create(ctx context.Context, req CreateSupplierRequest, actor string) (Supplier, error)
	Update(ctx context.Context, id string, req UpdateSupplierRequest, actor string) (Supplier, error)
	GetByID(ctx context.Context, id string) (Supplier, error)
	List(ctx context.Context, req ListSupplierRequest) (ListSupplierResponse, error)
	SoftDelete(ctx context.Context, id string, actor string) error
}

var (
	ErrInvalidID        = errors.New("invalid_supplier_id")
	ErrInvalidName      = errors.New("invalid_supplier_name")
	ErrSupplierNotFound = errors.New("supplier_not_found")
)
