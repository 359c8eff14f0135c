package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists invoices. The db handle is passed per call so the
// service can run multi-statement work inside one transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	ReplaceLines(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID, lines []InvoiceLineItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, req ListInvoiceRequest) ([]Invoice, int64, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id snowflake.ID, actor string, now time.Time) (bool, error)
}
