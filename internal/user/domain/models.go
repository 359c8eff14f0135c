// Package domain contains back-office user accounts and roles.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Role controls which admin surfaces a user can reach.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User is a back-office operator. Login is by email, credentials are
// stored as an argon2id hash and never returned to clients.
type User struct {
	ID           snowflake.ID                `gorm:"primaryKey" json:"id"`
	Name         string                      `gorm:"type:text;not null" json:"name"`
	Email        string                      `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Phone        string                      `gorm:"type:text;not null;default:''" json:"phone"`
	Role         Role                        `gorm:"type:text;not null;default:'staff'" json:"role"`
	PasswordHash string                      `gorm:"type:text;not null" json:"-"`
	Permissions  datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"permissions"`
	IsActive     bool                        `gorm:"not null;default:true" json:"is_active"`
	IsDeleted    bool                        `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt    time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt   time.Time                   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy    string                      `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy   string                      `gorm:"type:text;not null;default:''" json:"modified_by"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
