package domain

import (
	"context"
	"errors"
	"time"

	billingdomain "github.com/anish-1308/ibilling/internal/billing/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/shopspring/decimal"
)

// Draft is the client-submitted invoice payload before materialization.
type Draft struct {
	CustomerID     string                    `json:"customer_id"`
	Type           billingdomain.InvoiceType `json:"type"`
	Items          []billingdomain.LineItem  `json:"items"`
	Guests         int64                     `json:"guests"`
	Representative string                    `json:"representative"`
	TourStartDate  *time.Time                `json:"tour_start_date,omitempty"`
	TourEndDate    *time.Time                `json:"tour_end_date,omitempty"`
	Notes          string                    `json:"notes"`
	DueDate        *time.Time                `json:"due_date,omitempty"`
}

type UpdateInvoiceRequest struct {
	Items          *[]billingdomain.LineItem `json:"items"`
	Guests         *int64                    `json:"guests"`
	Representative *string                   `json:"representative"`
	TourStartDate  *time.Time                `json:"tour_start_date"`
	TourEndDate    *time.Time                `json:"tour_end_date"`
	Notes          *string                   `json:"notes"`
	DueDate        *time.Time                `json:"due_date"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	Status     string
	Type       string
	CustomerID string
	InvoiceNo  string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// Preview is the calculated but unsaved view of a draft.
type Preview struct {
	Type   billingdomain.InvoiceType `json:"type"`
	Items  []billingdomain.LineItem  `json:"items"`
	Totals billingdomain.Totals      `json:"totals"`
}

type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
}

type Service interface {
	CreateFromDraft(ctx context.Context, draft Draft, actor string) (Invoice, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest, actor string) (Invoice, error)
	Get(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	SoftDelete(ctx context.Context, id string, actor string) error
	// Preview calculates a draft without persisting anything.
	Preview(ctx context.Context, draft Draft) (Preview, error)
	RecordPayment(ctx context.Context, id string, req RecordPaymentRequest, actor string) (Invoice, error)
	MarkSent(ctx context.Context, id string, actor string) (Invoice, error)
}

var (
	ErrInvalidID       = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound = errors.New("invoice_not_found")
	ErrEmptyDraft      = errors.New("invoice_draft_empty")
	ErrInvalidAmount   = errors.New("invalid_payment_amount")
	ErrNotEditable     = errors.New("invoice_not_editable")
	ErrAlreadySent     = errors.New("invoice_already_sent")
)
