// Package service computes dashboard aggregates with plain SQL over the
// invoice and customer tables.
package service

import (
	"context"
	"fmt"

	"github.com/anish-1308/ibilling/internal/clock"
	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	dashboarddomain "github.com/anish-1308/ibilling/internal/dashboard/domain"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultWindowDays = 30
	maxActivityLimit  = 100
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

func NewService(p ServiceParam) dashboarddomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("dashboard.service"),
		clock: p.Clock,
	}
}

func (s *Service) Stats(ctx context.Context, days int) (dashboarddomain.Stats, error) {
	if days <= 0 {
		days = defaultWindowDays
	}

	stats := dashboarddomain.Stats{
		TotalIncome:       decimal.Zero,
		OutstandingAmount: decimal.Zero,
		StatusCounts:      map[string]int64{},
	}

	base := s.db.WithContext(ctx).Model(&invoicedomain.Invoice{}).Where("is_deleted = ?", false)

	var sums struct {
		Income      decimal.Decimal
		Outstanding decimal.Decimal
		Count       int64
	}
	err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount_paid), 0) AS income, COALESCE(SUM(amount_due), 0) AS outstanding, COUNT(*) AS count").
		Scan(&sums).Error
	if err != nil {
		return dashboarddomain.Stats{}, err
	}
	stats.TotalIncome = sums.Income
	stats.OutstandingAmount = sums.Outstanding
	stats.InvoiceCount = sums.Count

	if err := s.db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("is_deleted = ?", false).
		Count(&stats.CustomerCount).Error; err != nil {
		return dashboarddomain.Stats{}, err
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	err = base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return dashboarddomain.Stats{}, err
	}
	for _, row := range byStatus {
		stats.StatusCounts[row.Status] = row.Count
	}

	since := s.clock.Now().AddDate(0, 0, -days)
	var daily []struct {
		Day   string
		Count int64
		Total decimal.Decimal
	}
	err = base.Session(&gorm.Session{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&daily).Error
	if err != nil {
		return dashboarddomain.Stats{}, err
	}
	for _, row := range daily {
		stats.DailySales = append(stats.DailySales, dashboarddomain.DailySale{
			Day:   row.Day,
			Count: row.Count,
			Total: row.Total,
		})
	}

	return stats, nil
}

func (s *Service) RecentActivity(ctx context.Context, limit int) (dashboarddomain.ActivityResponse, error) {
	if limit <= 0 || limit > maxActivityLimit {
		limit = 20
	}

	var invoices []invoicedomain.Invoice
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("modified_at DESC").
		Limit(limit).
		Find(&invoices).Error
	if err != nil {
		return dashboarddomain.ActivityResponse{}, err
	}

	out := dashboarddomain.ActivityResponse{Activity: make([]dashboarddomain.Activity, 0, len(invoices))}
	for _, invoice := range invoices {
		out.Activity = append(out.Activity, dashboarddomain.Activity{
			Message:    activityMessage(invoice),
			OccurredAt: invoice.ModifiedAt,
		})
	}
	return out, nil
}

func activityMessage(invoice invoicedomain.Invoice) string {
	switch invoice.Status {
	case invoicedomain.StatusPaid:
		return fmt.Sprintf("Invoice %s for %s paid in full (%s)", invoice.InvoiceNo, invoice.CustomerName, invoice.Total.StringFixed(2))
	case invoicedomain.StatusOverdue:
		return fmt.Sprintf("Invoice %s for %s is overdue (%s outstanding)", invoice.InvoiceNo, invoice.CustomerName, invoice.AmountDue.StringFixed(2))
	case invoicedomain.StatusSent:
		return fmt.Sprintf("Invoice %s sent to %s (%s due)", invoice.InvoiceNo, invoice.CustomerName, invoice.AmountDue.StringFixed(2))
	default:
		return fmt.Sprintf("Invoice %s drafted for %s (%s)", invoice.InvoiceNo, invoice.CustomerName, invoice.Total.StringFixed(2))
	}
}
