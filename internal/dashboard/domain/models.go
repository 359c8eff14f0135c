// Package domain contains the admin dashboard read models.
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySale is one day's issued invoice volume.
type DailySale struct {
	Day   string          `json:"day"`
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Stats is the headline dashboard block.
type Stats struct {
	TotalIncome       decimal.Decimal  `json:"total_income"`
	OutstandingAmount decimal.Decimal  `json:"outstanding_amount"`
	InvoiceCount      int64            `json:"invoice_count"`
	CustomerCount     int64            `json:"customer_count"`
	StatusCounts      map[string]int64 `json:"status_counts"`
	DailySales        []DailySale      `json:"daily_sales"`
}

// Activity is a human-readable recent billing event.
type Activity struct {
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityResponse is the API response for recent activity.
type ActivityResponse struct {
	Activity []Activity `json:"activity"`
}

// Service exposes read-only aggregates over invoices and customers.
type Service interface {
	Stats(ctx context.Context, days int) (Stats, error)
	RecentActivity(ctx context.Context, limit int) (ActivityResponse, error)
}
