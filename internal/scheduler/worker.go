// Package scheduler runs the periodic overdue sweep. Sent invoices whose
// due date has passed without full payment are flipped to overdue so lists
// and dashboards agree even when nobody reads the invoice.
package scheduler

import (
	"context"
	"time"

	"github.com/anish-1308/ibilling/internal/clock"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Config Config `optional:"true"`
}

type Worker struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	cfg   Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		db:    p.DB,
		log:   p.Log.Named("scheduler.overdue"),
		clock: p.Clock,
		cfg:   p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil {
			w.log.Warn("overdue sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce flips every sent, unpaid, past-due invoice to overdue and returns
// how many rows changed.
func (w *Worker) RunOnce(ctx context.Context) (int64, error) {
	now := w.clock.Now()
	result := w.db.WithContext(ctx).
		Model(&invoicedomain.Invoice{}).
		Where("status = ?", invoicedomain.StatusSent).
		Where("is_deleted = ?", false).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Where("amount_paid < total").
		Updates(map[string]any{
			"status":      invoicedomain.StatusOverdue,
			"modified_at": now,
			"modified_by": "scheduler",
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		w.log.Info("invoices marked overdue", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}
