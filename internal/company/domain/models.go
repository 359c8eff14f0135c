// Package domain holds the single-row company profile, including the
// default VAT rate applied to new activity and hotel lines.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ProfileID is the fixed primary key of the single company row.
const ProfileID int64 = 1

// Profile is the agency's own identity and billing defaults.
type Profile struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"type:text;not null" json:"name"`
	Email      string          `gorm:"type:text;not null;default:''" json:"email"`
	Phone      string          `gorm:"type:text;not null;default:''" json:"phone"`
	Address    string          `gorm:"type:text;not null;default:''" json:"address"`
	OwnerName  string          `gorm:"type:text;not null;default:''" json:"owner_name"`
	OwnerEmail string          `gorm:"type:text;not null;default:''" json:"owner_email"`
	Logo       string          `gorm:"type:text;not null;default:''" json:"logo"`
	TaxRate    decimal.Decimal `gorm:"type:decimal(6,4);not null;default:5" json:"tax_rate"`
	ModifiedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	ModifiedBy string          `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (Profile) TableName() string { return "company_profile" }

type UpdateProfileRequest struct {
	Name       *string          `json:"name"`
	Email      *string          `json:"email"`
	Phone      *string          `json:"phone"`
	Address    *string          `json:"address"`
	OwnerName  *string          `json:"owner_name"`
	OwnerEmail *string          `json:"owner_email"`
	Logo       *string          `json:"logo"`
	TaxRate    *decimal.Decimal `json:"tax_rate"`
}

type Service interface {
	Get(ctx context.Context) (Profile, error)
	Update(ctx context.Context, req UpdateProfileRequest, actor string) (Profile, error)
	// TaxRate is the default VAT percentage for new taxable line items.
	TaxRate(ctx context.Context) (decimal.Decimal, error)
}

var (
	ErrInvalidName    = errors.New("invalid_company_name")
	ErrInvalidTaxRate = errors.New("invalid_company_tax_rate")
	ErrProfileMissing = errors.New("company_profile_missing")
)
