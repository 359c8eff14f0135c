// Package domain contains the customer reference data model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CustomerType distinguishes corporate from retail customers.
type CustomerType string

const (
	CustomerTypeB2B CustomerType = "B2B"
	CustomerTypeB2C CustomerType = "B2C"
)

// Customer is a billing contact. Deletion is a soft flag; invoices keep
// denormalized copies of the fields they used.
type Customer struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"type:text;not null" json:"name"`
	Phone         string       `gorm:"type:text;not null" json:"phone"`
	Email         string       `gorm:"type:text;not null" json:"email"`
	Fax           *string      `gorm:"type:text" json:"fax,omitempty"`
	Address       *string      `gorm:"type:text" json:"address,omitempty"`
	ContactPerson *string      `gorm:"type:text" json:"contact_person,omitempty"`
	Type          CustomerType `gorm:"type:text;not null;default:'B2C'" json:"type"`
	IsDeleted     bool         `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy     string       `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy    string       `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
