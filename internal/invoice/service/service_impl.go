// Package service implements invoice creation, payment and lifecycle.
package service

import (
	"context"
	"fmt"
	"strings"

	billingdomain "github.com/anish-1308/ibilling/internal/billing/domain"
	"github.com/anish-1308/ibilling/internal/clock"
	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	"github.com/anish-1308/ibilling/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      invoicedomain.Repository
	customers customerdomain.Service
}

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      invoicedomain.Repository
	Customers customerdomain.Service
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		customers: p.Customers,
	}
}

// CreateFromDraft validates and calculates a draft, then materializes it as
// a new invoice. Draft items are cloned before calculation so the persisted
// rows share nothing with the caller's slice.
func (s *Service) CreateFromDraft(ctx context.Context, draft invoicedomain.Draft, actor string) (invoicedomain.Invoice, error) {
	if len(draft.Items) == 0 {
		return invoicedomain.Invoice{}, invoicedomain.ErrEmptyDraft
	}
	if _, ok := draft.Type.ItemKind(); !ok {
		return invoicedomain.Invoice{}, billingdomain.ErrInvalidInvoiceType
	}

	customer, err := s.customers.GetByID(ctx, draft.CustomerID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	items, totals, err := s.calculate(draft.Items, draft.Type)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	now := s.clock.Now()
	invoice := invoicedomain.Invoice{
		ID:             s.genID.Generate(),
		InvoiceNo:      fmt.Sprintf("INV-%d", now.UnixMilli()),
		Type:           draft.Type,
		Status:         invoicedomain.StatusDraft,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerEmail:  customer.Email,
		CustomerPhone:  customer.Phone,
		Guests:         draft.Guests,
		Representative: strings.TrimSpace(draft.Representative),
		TourStartDate:  draft.TourStartDate,
		TourEndDate:    draft.TourEndDate,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		AmountDue:      totals.Total,
		AmountPaid:     decimal.Zero,
		Notes:          strings.TrimSpace(draft.Notes),
		DueDate:        draft.DueDate,
		CreatedAt:      now,
		ModifiedAt:     now,
		CreatedBy:      actor,
		ModifiedBy:     actor,
	}
	invoice.Lines = s.materialize(invoice.ID, items)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.String("invoice_no", invoice.InvoiceNo),
		zap.String("type", string(invoice.Type)),
		zap.Int("lines", len(invoice.Lines)),
	)
	return invoice, nil
}

// Update applies a partial edit. Replacing items recomputes every derived
// figure; client-sent totals are never trusted.
func (s *Service) Update(ctx context.Context, id string, req invoicedomain.UpdateInvoiceRequest, actor string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	var updated invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status == invoicedomain.StatusPaid {
			return invoicedomain.ErrNotEditable
		}

		if req.Guests != nil {
			invoice.Guests = *req.Guests
		}
		if req.Representative != nil {
			invoice.Representative = strings.TrimSpace(*req.Representative)
		}
		if req.TourStartDate != nil {
			invoice.TourStartDate = req.TourStartDate
		}
		if req.TourEndDate != nil {
			invoice.TourEndDate = req.TourEndDate
		}
		if req.Notes != nil {
			invoice.Notes = strings.TrimSpace(*req.Notes)
		}
		if req.DueDate != nil {
			invoice.DueDate = req.DueDate
		}

		if req.Items != nil {
			items, totals, err := s.calculate(*req.Items, invoice.Type)
			if err != nil {
				return err
			}
			invoice.Subtotal = totals.Subtotal
			invoice.Tax = totals.Tax
			invoice.Total = totals.Total
			invoice.AmountDue = totals.Total.Sub(invoice.AmountPaid)
			invoice.Lines = s.materialize(invoice.ID, items)
			if err := s.repo.ReplaceLines(ctx, tx, invoice.ID, invoice.Lines); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		invoice.ModifiedAt = now
		invoice.ModifiedBy = actor
		invoice.RecalculateState(now)
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		updated = *invoice
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}
	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	invoice.RecalculateState(s.clock.Now())
	return *invoice, nil
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	invoices, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	now := s.clock.Now()
	for i := range invoices {
		invoices[i].RecalculateState(now)
	}

	limit, offset := pagination.Resolve(req.Pagination)
	return invoicedomain.ListInvoiceResponse{
		PageInfo: pagination.PageInfo{
			NextPageToken: pagination.NextToken(offset, limit, total),
			TotalCount:    total,
		},
		Invoices: invoices,
	}, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string, actor string) error {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.ErrInvalidID
	}
	deleted, err := s.repo.SoftDelete(ctx, s.db, invoiceID, actor, s.clock.Now())
	if err != nil {
		return err
	}
	if !deleted {
		return invoicedomain.ErrInvoiceNotFound
	}
	return nil
}

// Preview runs validation and calculation without touching the database.
func (s *Service) Preview(ctx context.Context, draft invoicedomain.Draft) (invoicedomain.Preview, error) {
	if _, ok := draft.Type.ItemKind(); !ok {
		return invoicedomain.Preview{}, billingdomain.ErrInvalidInvoiceType
	}
	items, totals, err := s.calculate(draft.Items, draft.Type)
	if err != nil {
		return invoicedomain.Preview{}, err
	}
	return invoicedomain.Preview{
		Type:   draft.Type,
		Items:  items,
		Totals: totals.Round(),
	}, nil
}

func (s *Service) RecordPayment(ctx context.Context, id string, req invoicedomain.RecordPaymentRequest, actor string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}
	if !req.Amount.IsPositive() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidAmount
	}

	var updated invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		invoice.AmountPaid = invoice.AmountPaid.Add(req.Amount)
		invoice.AmountDue = invoice.Total.Sub(invoice.AmountPaid)
		if invoice.AmountDue.IsNegative() {
			invoice.AmountDue = decimal.Zero
		}
		invoice.ModifiedAt = now
		invoice.ModifiedBy = actor
		invoice.RecalculateState(now)
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		updated = *invoice
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("payment recorded",
		zap.String("invoice_no", updated.InvoiceNo),
		zap.String("amount", req.Amount.String()),
		zap.String("method", req.Method),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

func (s *Service) MarkSent(ctx context.Context, id string, actor string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	var updated invoicedomain.Invoice
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invoice, err := s.repo.FindByID(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status != invoicedomain.StatusDraft {
			return invoicedomain.ErrAlreadySent
		}

		now := s.clock.Now()
		invoice.Status = invoicedomain.StatusSent
		invoice.ModifiedAt = now
		invoice.ModifiedBy = actor
		invoice.RecalculateState(now)
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		updated = *invoice
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	return updated, nil
}

// calculate clones, validates and recomputes a draft's items, returning the
// fresh items and their fold.
func (s *Service) calculate(items []billingdomain.LineItem, invoiceType billingdomain.InvoiceType) ([]billingdomain.LineItem, billingdomain.Totals, error) {
	cloned := make([]billingdomain.LineItem, 0, len(items))
	for _, item := range items {
		if err := billingdomain.ValidateItem(item); err != nil {
			return nil, billingdomain.Totals{}, err
		}
		cloned = append(cloned, item.Clone())
	}
	return billingdomain.RecalculateAndAggregate(cloned, invoiceType)
}

func (s *Service) materialize(invoiceID snowflake.ID, items []billingdomain.LineItem) []invoicedomain.InvoiceLineItem {
	lines := make([]invoicedomain.InvoiceLineItem, 0, len(items))
	for i, item := range items {
		line := invoicedomain.MaterializeLine(item)
		line.ID = s.genID.Generate()
		line.InvoiceID = invoiceID
		line.Position = i
		lines = append(lines, line)
	}
	return lines
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
