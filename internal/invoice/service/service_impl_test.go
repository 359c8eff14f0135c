package service

import (
	"context"
	"errors"
	"testing"
	"time"

	billingdomain "github.com/anish-1308/ibilling/internal/billing/domain"
	"github.com/anish-1308/ibilling/internal/clock"
	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	customerservice "github.com/anish-1308/ibilling/internal/customer/service"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/anish-1308/ibilling/internal/invoice/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func setupInvoiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&customerdomain.Customer{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLineItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Exec("DELETE FROM invoice_line_items")
	db.Exec("DELETE FROM invoices")
	db.Exec("DELETE FROM customers")
	return db
}

func newInvoiceService(t *testing.T, db *gorm.DB, clk clock.Clock) (*Service, customerdomain.Customer) {
	t.Helper()
	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	customers := customerservice.NewService(customerservice.ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
	})
	customer, err := customers.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Name:  "Desert Rose Travel",
		Email: "billing@desertrose.example",
		Phone: "+971-50-0000000",
	}, "test")
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	svc := &Service{
		db:        db,
		log:       zap.NewNop(),
		genID:     node,
		clock:     clk,
		repo:      repository.Provide(),
		customers: customers,
	}
	return svc, customer
}

func d(value string) decimal.Decimal {
	out, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return out
}

func date(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func activityDraft(customerID string) invoicedomain.Draft {
	return invoicedomain.Draft{
		CustomerID: customerID,
		Type:       billingdomain.InvoiceTypeActivities,
		Guests:     3,
		Items: []billingdomain.LineItem{{
			Kind: billingdomain.ItemKindActivity,
			Activity: &billingdomain.ActivityItem{
				ItemName:      "Desert Safari",
				ChildQty:      2,
				AdultQty:      1,
				ChildPrice:    d("40"),
				AdultPrice:    d("100"),
				VATPercentage: d("5"),
			},
		}},
	}
}

func TestCreateFromDraftActivity(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})
	ctx := context.Background()

	invoice, err := svc.CreateFromDraft(ctx, activityDraft(customer.ID.String()), "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if invoice.InvoiceNo != "INV-1748772000000" {
		t.Fatalf("invoice no: %q", invoice.InvoiceNo)
	}
	if invoice.Status != invoicedomain.StatusDraft {
		t.Fatalf("status: %q", invoice.Status)
	}
	if !invoice.Subtotal.Equal(d("180")) || !invoice.Tax.Equal(d("9")) || !invoice.Total.Equal(d("189")) {
		t.Fatalf("totals: %s / %s / %s", invoice.Subtotal, invoice.Tax, invoice.Total)
	}
	if !invoice.AmountDue.Equal(d("189")) || !invoice.AmountPaid.IsZero() {
		t.Fatalf("amounts: due %s paid %s", invoice.AmountDue, invoice.AmountPaid)
	}
	if invoice.CustomerName != "Desert Rose Travel" {
		t.Fatalf("customer not denormalized: %q", invoice.CustomerName)
	}

	stored, err := svc.Get(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("lines: %d", len(stored.Lines))
	}
	line := stored.Lines[0]
	if line.Kind != billingdomain.ItemKindActivity {
		t.Fatalf("line kind: %q", line.Kind)
	}
	if !line.Total.Equal(d("189")) || !line.VATAmount.Equal(d("9")) {
		t.Fatalf("line totals: %s / %s", line.Total, line.VATAmount)
	}
}

func TestCreateFromDraftHotelNights(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})

	draft := invoicedomain.Draft{
		CustomerID: customer.ID.String(),
		Type:       billingdomain.InvoiceTypeHotel,
		Items: []billingdomain.LineItem{{
			Kind: billingdomain.ItemKindHotel,
			Hotel: &billingdomain.HotelItem{
				HotelName:     "Marina View",
				CheckInDate:   date("2025-07-01"),
				CheckOutDate:  date("2025-07-04"),
				Guests:        2,
				PricePerNight: d("200"),
				VATPercentage: d("5"),
			},
		}},
	}

	invoice, err := svc.CreateFromDraft(context.Background(), draft, "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invoice.Lines[0].Nights != 3 {
		t.Fatalf("nights: %d", invoice.Lines[0].Nights)
	}
	if !invoice.Total.Equal(d("630")) {
		t.Fatalf("total: %s", invoice.Total)
	}
}

func TestCreateRejectsMixedKinds(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})

	draft := activityDraft(customer.ID.String())
	draft.Items = append(draft.Items, billingdomain.LineItem{
		Kind: billingdomain.ItemKindFlight,
		Flight: &billingdomain.FlightItem{
			GuestName: "A Traveller",
			SellPrice: d("450"),
		},
	})

	_, err := svc.CreateFromDraft(context.Background(), draft, "agent")
	if !errors.Is(err, billingdomain.ErrItemKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}

	var count int64
	db.Model(&invoicedomain.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected draft persisted %d invoices", count)
	}
}

func TestCreateIsolatesDraftItems(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})
	ctx := context.Background()

	draft := activityDraft(customer.ID.String())
	invoice, err := svc.CreateFromDraft(ctx, draft, "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// mutate the caller's draft after materialization
	draft.Items[0].Activity.AdultPrice = d("9999")
	draft.Items[0].Activity.ItemName = "changed"

	stored, err := svc.Get(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	line := stored.Lines[0]
	if line.ItemName != "Desert Safari" {
		t.Fatalf("stored line mutated: %q", line.ItemName)
	}
	if !line.AdultPrice.Equal(d("100")) {
		t.Fatalf("stored price mutated: %s", line.AdultPrice)
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})

	preview, err := svc.Preview(context.Background(), activityDraft(customer.ID.String()))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !preview.Totals.Total.Equal(d("189")) {
		t.Fatalf("preview total: %s", preview.Totals.Total)
	}

	var count int64
	db.Model(&invoicedomain.Invoice{}).Count(&count)
	if count != 0 {
		t.Fatalf("preview persisted %d invoices", count)
	}
}

func TestUpdateItemsRecomputesTotals(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})
	ctx := context.Background()

	invoice, err := svc.CreateFromDraft(ctx, activityDraft(customer.ID.String()), "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// stale derived fields in the payload must be ignored
	items := []billingdomain.LineItem{{
		Kind: billingdomain.ItemKindActivity,
		Activity: &billingdomain.ActivityItem{
			ItemName:      "Dhow Cruise",
			ChildQty:      0,
			AdultQty:      2,
			ChildPrice:    d("0"),
			AdultPrice:    d("170"),
			VATPercentage: d("5"),
			Total:         d("1"),
		},
	}}
	updated, err := svc.Update(ctx, invoice.ID.String(), invoicedomain.UpdateInvoiceRequest{Items: &items}, "agent")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Total.Equal(d("357")) {
		t.Fatalf("total after update: %s", updated.Total)
	}
	if !updated.AmountDue.Equal(d("357")) {
		t.Fatalf("amount due after update: %s", updated.AmountDue)
	}
	if len(updated.Lines) != 1 || updated.Lines[0].ItemName != "Dhow Cruise" {
		t.Fatalf("lines not replaced: %+v", updated.Lines)
	}
}

func TestPaymentLifecycle(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})
	ctx := context.Background()

	invoice, err := svc.CreateFromDraft(ctx, activityDraft(customer.ID.String()), "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sent, err := svc.MarkSent(ctx, invoice.ID.String(), "agent")
	if err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	if sent.Status != invoicedomain.StatusSent {
		t.Fatalf("status after send: %q", sent.Status)
	}
	if _, err := svc.MarkSent(ctx, invoice.ID.String(), "agent"); !errors.Is(err, invoicedomain.ErrAlreadySent) {
		t.Fatalf("expected already sent, got %v", err)
	}

	partial, err := svc.RecordPayment(ctx, invoice.ID.String(), invoicedomain.RecordPaymentRequest{Amount: d("100")}, "agent")
	if err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if partial.Status != invoicedomain.StatusSent {
		t.Fatalf("status after partial: %q", partial.Status)
	}
	if !partial.AmountDue.Equal(d("89")) {
		t.Fatalf("amount due after partial: %s", partial.AmountDue)
	}

	paid, err := svc.RecordPayment(ctx, invoice.ID.String(), invoicedomain.RecordPaymentRequest{Amount: d("89")}, "agent")
	if err != nil {
		t.Fatalf("final payment: %v", err)
	}
	if paid.Status != invoicedomain.StatusPaid {
		t.Fatalf("status after payoff: %q", paid.Status)
	}
	if !paid.AmountDue.IsZero() {
		t.Fatalf("amount due after payoff: %s", paid.AmountDue)
	}

	_, err = svc.RecordPayment(ctx, invoice.ID.String(), invoicedomain.RecordPaymentRequest{Amount: d("-5")}, "agent")
	if !errors.Is(err, invoicedomain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

func TestOverdueOnRead(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})
	ctx := context.Background()

	draft := activityDraft(customer.ID.String())
	draft.DueDate = date("2025-05-01")
	invoice, err := svc.CreateFromDraft(ctx, draft, "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// drafts never go overdue
	got, err := svc.Get(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != invoicedomain.StatusDraft {
		t.Fatalf("draft advanced to %q", got.Status)
	}

	if _, err := svc.MarkSent(ctx, invoice.ID.String(), "agent"); err != nil {
		t.Fatalf("mark sent: %v", err)
	}
	got, err = svc.Get(ctx, invoice.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != invoicedomain.StatusOverdue {
		t.Fatalf("expected overdue, got %q", got.Status)
	}
}

func TestSoftDeleteHidesInvoice(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})
	ctx := context.Background()

	invoice, err := svc.CreateFromDraft(ctx, activityDraft(customer.ID.String()), "agent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SoftDelete(ctx, invoice.ID.String(), "agent"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	if _, err := svc.Get(ctx, invoice.ID.String()); !errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	list, err := svc.List(ctx, invoicedomain.ListInvoiceRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Invoices) != 0 {
		t.Fatalf("deleted invoice listed: %d", len(list.Invoices))
	}
}

func TestCreateRejectsEmptyDraft(t *testing.T) {
	db := setupInvoiceTestDB(t)
	svc, customer := newInvoiceService(t, db, clock.FixedClock{At: testNow})

	draft := activityDraft(customer.ID.String())
	draft.Items = nil
	_, err := svc.CreateFromDraft(context.Background(), draft, "agent")
	if !errors.Is(err, invoicedomain.ErrEmptyDraft) {
		t.Fatalf("expected empty draft, got %v", err)
	}
}
