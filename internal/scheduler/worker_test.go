package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/anish-1308/ibilling/internal/clock"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSchedulerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&invoicedomain.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Exec("DELETE FROM invoices")
	return db
}

var testNode *snowflake.Node

func insertInvoice(t *testing.T, db *gorm.DB, status invoicedomain.Status, due *time.Time, total, paid string) snowflake.ID {
	t.Helper()
	if testNode == nil {
		node, err := snowflake.NewNode(3)
		if err != nil {
			t.Fatalf("snowflake node: %v", err)
		}
		testNode = node
	}
	node := testNode
	invoice := invoicedomain.Invoice{
		ID:           node.Generate(),
		InvoiceNo:    "INV-test",
		Type:         "activities",
		Status:       status,
		CustomerID:   node.Generate(),
		CustomerName: "c",
		Total:        mustDecimal(t, total),
		AmountPaid:   mustDecimal(t, paid),
		DueDate:      due,
	}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("insert invoice: %v", err)
	}
	return invoice.ID
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	out, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("decimal %q: %v", value, err)
	}
	return out
}

func TestRunOnceFlipsPastDueSentInvoices(t *testing.T) {
	db := setupSchedulerTestDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	pastDue := insertInvoice(t, db, invoicedomain.StatusSent, &past, "100", "0")
	notDue := insertInvoice(t, db, invoicedomain.StatusSent, &future, "100", "0")
	paid := insertInvoice(t, db, invoicedomain.StatusSent, &past, "100", "100")
	draft := insertInvoice(t, db, invoicedomain.StatusDraft, &past, "100", "0")
	noDue := insertInvoice(t, db, invoicedomain.StatusSent, nil, "100", "0")

	worker := NewWorker(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.FixedClock{At: now},
	})

	changed, err := worker.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 flip, got %d", changed)
	}

	want := map[snowflake.ID]invoicedomain.Status{
		pastDue: invoicedomain.StatusOverdue,
		notDue:  invoicedomain.StatusSent,
		paid:    invoicedomain.StatusSent,
		draft:   invoicedomain.StatusDraft,
		noDue:   invoicedomain.StatusSent,
	}
	for id, status := range want {
		var got invoicedomain.Invoice
		if err := db.First(&got, "id = ?", id).Error; err != nil {
			t.Fatalf("load %v: %v", id, err)
		}
		if got.Status != status {
			t.Fatalf("invoice %v: expected %q, got %q", id, status, got.Status)
		}
	}
}

func TestRunOnceIdempotent(t *testing.T) {
	db := setupSchedulerTestDB(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	insertInvoice(t, db, invoicedomain.StatusSent, &past, "50", "0")

	worker := NewWorker(Params{
		DB:    db,
		Log:   zap.NewNop(),
		Clock: clock.FixedClock{At: now},
	})

	if changed, err := worker.RunOnce(context.Background()); err != nil || changed != 1 {
		t.Fatalf("first run: changed=%d err=%v", changed, err)
	}
	if changed, err := worker.RunOnce(context.Background()); err != nil || changed != 0 {
		t.Fatalf("second run: changed=%d err=%v", changed, err)
	}
}
