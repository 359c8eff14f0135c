// Package seed bootstraps the single company profile and a default admin
// account so a fresh install is usable immediately.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	companydomain "github.com/anish-1308/ibilling/internal/company/domain"
	userdomain "github.com/anish-1308/ibilling/internal/user/domain"
	"github.com/anish-1308/ibilling/internal/user/password"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultCompanyName   = "My Travel Agency"
	defaultTaxRate       = 5
	defaultAdminEmail    = "admin@ibilling.local"
	defaultAdminPassword = "changeme-now"
	defaultAdminName     = "Administrator"
)

// EnsureDefaults seeds the company profile row and the default admin user.
// Both are idempotent; existing rows are left untouched.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCompanyProfile(ctx, tx); err != nil {
			return err
		}
		return ensureAdminUser(ctx, tx, node)
	})
}

func ensureCompanyProfile(ctx context.Context, tx *gorm.DB) error {
	var profile companydomain.Profile
	err := tx.WithContext(ctx).First(&profile, "id = ?", companydomain.ProfileID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile = companydomain.Profile{
		ID:         companydomain.ProfileID,
		Name:       defaultCompanyName,
		TaxRate:    decimal.NewFromInt(defaultTaxRate),
		ModifiedAt: time.Now().UTC(),
		ModifiedBy: "seed",
	}
	return tx.WithContext(ctx).Create(&profile).Error
}

func ensureAdminUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var user userdomain.User
	err := tx.WithContext(ctx).
		Where("email = ? AND is_deleted = ?", defaultAdminEmail, false).
		First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	user = userdomain.User{
		ID:           node.Generate(),
		Name:         defaultAdminName,
		Email:        strings.ToLower(defaultAdminEmail),
		Role:         userdomain.RoleAdmin,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    now,
		ModifiedAt:   now,
		CreatedBy:    "seed",
		ModifiedBy:   "seed",
	}
	return tx.WithContext(ctx).Create(&user).Error
}
