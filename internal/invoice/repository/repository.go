// Package repository is the gorm persistence layer for invoices.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type gormRepository struct{}

// Provide returns the gorm-backed invoice repository.
func Provide() invoicedomain.Repository {
	return gormRepository{}
}

func (gormRepository) Insert(ctx context.Context, db *gorm.DB, invoice *invoicedomain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (gormRepository) Update(ctx context.Context, db *gorm.DB, invoice *invoicedomain.Invoice) error {
	return db.WithContext(ctx).Omit("Lines").Save(invoice).Error
}

func (gormRepository) ReplaceLines(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, lines []invoicedomain.InvoiceLineItem) error {
	tx := db.WithContext(ctx)
	if err := tx.Where("invoice_id = ?", invoiceID).Delete(&invoicedomain.InvoiceLineItem{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}

func (gormRepository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoicedomain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (gormRepository) List(ctx context.Context, db *gorm.DB, req invoicedomain.ListInvoiceRequest) ([]invoicedomain.Invoice, int64, error) {
	limit, offset := pagination.Resolve(req.Pagination)

	query := db.WithContext(ctx).Model(&invoicedomain.Invoice{}).Where("is_deleted = ?", false)
	if status := strings.TrimSpace(req.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if invType := strings.TrimSpace(req.Type); invType != "" {
		query = query.Where("type = ?", invType)
	}
	if customerID := strings.TrimSpace(req.CustomerID); customerID != "" {
		id, err := snowflake.ParseString(customerID)
		if err != nil {
			return nil, 0, invoicedomain.ErrInvalidID
		}
		query = query.Where("customer_id = ?", id)
	}
	if invoiceNo := strings.TrimSpace(req.InvoiceNo); invoiceNo != "" {
		query = query.Where("invoice_no LIKE ?", "%"+invoiceNo+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []invoicedomain.Invoice
	err := query.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (gormRepository) SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID, actor string, now time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted":  true,
			"modified_at": now,
			"modified_by": actor,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
