// Package domain contains the persisted invoice aggregate. Line items are
// materialized by value from draft input; fields derived by the billing
// calculators (totals, VAT, nights) are stored but never client-editable.
package domain

import (
	"time"

	billingdomain "github.com/anish-1308/ibilling/internal/billing/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Status tracks an invoice through its collection lifecycle.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Invoice is the persisted header row. Customer fields are denormalized at
// creation time so later customer edits or deletes leave issued invoices
// untouched.
type Invoice struct {
	ID             snowflake.ID              `gorm:"primaryKey" json:"id"`
	InvoiceNo      string                    `gorm:"type:text;not null;index" json:"invoice_no"`
	Type           billingdomain.InvoiceType `gorm:"type:text;not null" json:"type"`
	Status         Status                    `gorm:"type:text;not null;default:'draft';index" json:"status"`
	CustomerID     snowflake.ID              `gorm:"not null;index" json:"customer_id"`
	CustomerName   string                    `gorm:"type:text;not null" json:"customer_name"`
	CustomerEmail  string                    `gorm:"type:text;not null;default:''" json:"customer_email"`
	CustomerPhone  string                    `gorm:"type:text;not null;default:''" json:"customer_phone"`
	Guests         int64                     `gorm:"not null;default:0" json:"guests"`
	Representative string                    `gorm:"type:text;not null;default:''" json:"representative"`
	TourStartDate  *time.Time                `json:"tour_start_date,omitempty"`
	TourEndDate    *time.Time                `json:"tour_end_date,omitempty"`
	Subtotal       decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	Tax            decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0" json:"tax"`
	Total          decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	AmountDue      decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0" json:"amount_due"`
	AmountPaid     decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0" json:"amount_paid"`
	Notes          string                    `gorm:"type:text;not null;default:''" json:"notes"`
	DueDate        *time.Time                `gorm:"index" json:"due_date,omitempty"`
	IsDeleted      bool                      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt      time.Time                 `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	ModifiedAt     time.Time                 `gorm:"not null;default:CURRENT_TIMESTAMP" json:"modified_at"`
	CreatedBy      string                    `gorm:"type:text;not null;default:''" json:"created_by"`
	ModifiedBy     string                    `gorm:"type:text;not null;default:''" json:"modified_by"`

	Lines []InvoiceLineItem `gorm:"foreignKey:InvoiceID" json:"lines"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// RecalculateState derives the effective status from payment progress and
// the due date. Draft invoices never advance on their own.
func (i *Invoice) RecalculateState(now time.Time) {
	if i.Status == StatusDraft {
		return
	}
	if i.AmountPaid.GreaterThanOrEqual(i.Total) {
		i.Status = StatusPaid
		return
	}
	if i.DueDate != nil && now.After(*i.DueDate) {
		i.Status = StatusOverdue
		return
	}
	i.Status = StatusSent
}

// InvoiceLineItem is one materialized draft line. Columns for the two
// variants the row does not carry stay NULL; Kind discriminates.
type InvoiceLineItem struct {
	ID        snowflake.ID           `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID           `gorm:"not null;index" json:"invoice_id"`
	Kind      billingdomain.ItemKind `gorm:"type:text;not null" json:"kind"`
	Position  int                    `gorm:"not null;default:0" json:"position"`

	// flight
	FlightType  string           `gorm:"type:text;not null;default:''" json:"flight_type,omitempty"`
	GuestName   string           `gorm:"type:text;not null;default:''" json:"guest_name,omitempty"`
	TravelDate  *time.Time       `json:"travel_date,omitempty"`
	ReturnDate  *time.Time       `json:"return_date,omitempty"`
	Source      string           `gorm:"type:text;not null;default:''" json:"source,omitempty"`
	Destination string           `gorm:"type:text;not null;default:''" json:"destination,omitempty"`
	PassportNo  string           `gorm:"type:text;not null;default:''" json:"passport_no,omitempty"`
	BuyPrice    *decimal.Decimal `gorm:"type:decimal(18,4)" json:"buy_price,omitempty"`
	SellPrice   *decimal.Decimal `gorm:"type:decimal(18,4)" json:"sell_price,omitempty"`

	// activity
	ItemName   string           `gorm:"type:text;not null;default:''" json:"item_name,omitempty"`
	Supplier   string           `gorm:"type:text;not null;default:''" json:"supplier,omitempty"`
	ChildQty   int64            `gorm:"not null;default:0" json:"child_qty,omitempty"`
	AdultQty   int64            `gorm:"not null;default:0" json:"adult_qty,omitempty"`
	ChildPrice *decimal.Decimal `gorm:"type:decimal(18,4)" json:"child_price,omitempty"`
	AdultPrice *decimal.Decimal `gorm:"type:decimal(18,4)" json:"adult_price,omitempty"`
	ChildTotal *decimal.Decimal `gorm:"type:decimal(18,4)" json:"child_total,omitempty"`
	AdultTotal *decimal.Decimal `gorm:"type:decimal(18,4)" json:"adult_total,omitempty"`

	// hotel
	HotelID       *snowflake.ID    `gorm:"index" json:"hotel_id,omitempty"`
	HotelName     string           `gorm:"type:text;not null;default:''" json:"hotel_name,omitempty"`
	CheckInDate   *time.Time       `json:"check_in_date,omitempty"`
	CheckOutDate  *time.Time       `json:"check_out_date,omitempty"`
	Guests        int64            `gorm:"not null;default:0" json:"guests,omitempty"`
	PricePerNight *decimal.Decimal `gorm:"type:decimal(18,4)" json:"price_per_night,omitempty"`
	Nights        int64            `gorm:"not null;default:0" json:"nights,omitempty"`
	Notes         string           `gorm:"type:text;not null;default:''" json:"notes,omitempty"`

	VATPercentage decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0" json:"vat_percentage"`
	VATAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"vat_amount"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
}

// TableName sets the database table name.
func (InvoiceLineItem) TableName() string { return "invoice_line_items" }

// MaterializeLine copies one calculated draft line into a fresh row. The
// input is cloned by the caller before calculation, so the row shares no
// pointers with the draft.
func MaterializeLine(item billingdomain.LineItem) InvoiceLineItem {
	row := InvoiceLineItem{
		Kind:      item.Kind,
		VATAmount: item.VATAmount(),
		Total:     item.Total(),
	}
	switch item.Kind {
	case billingdomain.ItemKindFlight:
		f := item.Flight
		row.FlightType = string(f.FlightType)
		row.GuestName = f.GuestName
		row.TravelDate = f.TravelDate
		row.ReturnDate = f.ReturnDate
		row.Source = f.Source
		row.Destination = f.Destination
		row.PassportNo = f.PassportNo
		row.BuyPrice = ptr(f.BuyPrice)
		row.SellPrice = ptr(f.SellPrice)
	case billingdomain.ItemKindActivity:
		a := item.Activity
		row.ItemName = a.ItemName
		row.Supplier = a.Supplier
		row.ChildQty = a.ChildQty
		row.AdultQty = a.AdultQty
		row.ChildPrice = ptr(a.ChildPrice)
		row.AdultPrice = ptr(a.AdultPrice)
		row.ChildTotal = ptr(a.ChildTotal)
		row.AdultTotal = ptr(a.AdultTotal)
		row.VATPercentage = a.VATPercentage
	case billingdomain.ItemKindHotel:
		h := item.Hotel
		if h.HotelID != 0 {
			id := h.HotelID
			row.HotelID = &id
		}
		row.HotelName = h.HotelName
		row.CheckInDate = h.CheckInDate
		row.CheckOutDate = h.CheckOutDate
		row.Guests = h.Guests
		row.PricePerNight = ptr(h.PricePerNight)
		row.Nights = h.Nights
		row.Notes = h.Notes
		row.VATPercentage = h.VATPercentage
	}
	return row
}

// ToLineItem rebuilds the billing union from a stored row.
func (r InvoiceLineItem) ToLineItem() billingdomain.LineItem {
	switch r.Kind {
	case billingdomain.ItemKindFlight:
		return billingdomain.LineItem{
			Kind: r.Kind,
			Flight: &billingdomain.FlightItem{
				FlightType:  billingdomain.FlightType(r.FlightType),
				GuestName:   r.GuestName,
				TravelDate:  r.TravelDate,
				ReturnDate:  r.ReturnDate,
				Source:      r.Source,
				Destination: r.Destination,
				PassportNo:  r.PassportNo,
				BuyPrice:    deref(r.BuyPrice),
				SellPrice:   deref(r.SellPrice),
				Total:       r.Total,
			},
		}
	case billingdomain.ItemKindActivity:
		return billingdomain.LineItem{
			Kind: r.Kind,
			Activity: &billingdomain.ActivityItem{
				ItemName:      r.ItemName,
				Supplier:      r.Supplier,
				ChildQty:      r.ChildQty,
				AdultQty:      r.AdultQty,
				ChildPrice:    deref(r.ChildPrice),
				AdultPrice:    deref(r.AdultPrice),
				VATPercentage: r.VATPercentage,
				ChildTotal:    deref(r.ChildTotal),
				AdultTotal:    deref(r.AdultTotal),
				VATAmount:     r.VATAmount,
				Total:         r.Total,
			},
		}
	case billingdomain.ItemKindHotel:
		var hotelID snowflake.ID
		if r.HotelID != nil {
			hotelID = *r.HotelID
		}
		return billingdomain.LineItem{
			Kind: r.Kind,
			Hotel: &billingdomain.HotelItem{
				HotelID:       hotelID,
				HotelName:     r.HotelName,
				CheckInDate:   r.CheckInDate,
				CheckOutDate:  r.CheckOutDate,
				Guests:        r.Guests,
				PricePerNight: deref(r.PricePerNight),
				Nights:        r.Nights,
				VATPercentage: r.VATPercentage,
				VATAmount:     r.VATAmount,
				Notes:         r.Notes,
				Total:         r.Total,
			},
		}
	}
	return billingdomain.LineItem{Kind: r.Kind}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
