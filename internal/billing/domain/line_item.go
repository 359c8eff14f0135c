// Package domain implements the invoice line item pricing engine.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ItemKind discriminates the line item variants.
type ItemKind string

const (
	ItemKindFlight   ItemKind = "flight"
	ItemKindActivity ItemKind = "activity"
	ItemKindHotel    ItemKind = "hotel"
)

// InvoiceType determines which item kind an invoice may carry. Items of
// different kinds are never mixed within one invoice.
type InvoiceType string

const (
	InvoiceTypeActivities InvoiceType = "activities"
	InvoiceTypeHotel      InvoiceType = "hotel"
	InvoiceTypeFlights    InvoiceType = "flights"
)

// ItemKind returns the line item kind legal under this invoice type.
func (t InvoiceType) ItemKind() (ItemKind, bool) {
	switch t {
	case InvoiceTypeActivities:
		return ItemKindActivity, true
	case InvoiceTypeHotel:
		return ItemKindHotel, true
	case InvoiceTypeFlights:
		return ItemKindFlight, true
	default:
		return "", false
	}
}

// FlightType distinguishes one-way from return bookings.
type FlightType string

const (
	FlightTypeOneWay FlightType = "oneway"
	FlightTypeReturn FlightType = "return"
)

// FlightItem is a flight booking line. Only SellPrice contributes to the
// total; BuyPrice is kept for internal margin tracking and no VAT applies.
type FlightItem struct {
	FlightType  FlightType      `json:"flight_type"`
	GuestName   string          `json:"guest_name"`
	TravelDate  *time.Time      `json:"travel_date,omitempty"`
	ReturnDate  *time.Time      `json:"return_date,omitempty"`
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	PassportNo  string          `json:"passport_no,omitempty"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	Total       decimal.Decimal `json:"total"`
}

// ActivityItem is an excursion or tour activity line with per-child and
// per-adult pricing.
type ActivityItem struct {
	ItemName      string          `json:"item_name"`
	Supplier      string          `json:"supplier,omitempty"`
	ChildQty      int64           `json:"child_qty"`
	AdultQty      int64           `json:"adult_qty"`
	ChildPrice    decimal.Decimal `json:"child_price"`
	AdultPrice    decimal.Decimal `json:"adult_price"`
	VATPercentage decimal.Decimal `json:"vat_percentage"`
	ChildTotal    decimal.Decimal `json:"child_total"`
	AdultTotal    decimal.Decimal `json:"adult_total"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	Total         decimal.Decimal `json:"total"`
}

// HotelItem is a hotel stay line. Nights is derived from the stay range and
// never set by the caller.
type HotelItem struct {
	HotelID       snowflake.ID    `json:"hotel_id,omitempty"`
	HotelName     string          `json:"hotel_name"`
	CheckInDate   *time.Time      `json:"check_in_date,omitempty"`
	CheckOutDate  *time.Time      `json:"check_out_date,omitempty"`
	Guests        int64           `json:"guests"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Nights        int64           `json:"nights"`
	VATPercentage decimal.Decimal `json:"vat_percentage"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	Notes         string          `json:"notes,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// LineItem is a tagged union over the three booking variants. Exactly one
// variant pointer is set, matching Kind.
type LineItem struct {
	Kind     ItemKind      `json:"kind"`
	Flight   *FlightItem   `json:"flight,omitempty"`
	Activity *ActivityItem `json:"activity,omitempty"`
	Hotel    *HotelItem    `json:"hotel,omitempty"`
}

// Total returns the line's tax-inclusive total.
func (li LineItem) Total() decimal.Decimal {
	switch li.Kind {
	case ItemKindFlight:
		if li.Flight != nil {
			return li.Flight.Total
		}
	case ItemKindActivity:
		if li.Activity != nil {
			return li.Activity.Total
		}
	case ItemKindHotel:
		if li.Hotel != nil {
			return li.Hotel.Total
		}
	}
	return decimal.Zero
}

// VATAmount returns the VAT embedded in the line total. Flights carry none.
func (li LineItem) VATAmount() decimal.Decimal {
	switch li.Kind {
	case ItemKindActivity:
		if li.Activity != nil {
			return li.Activity.VATAmount
		}
	case ItemKindHotel:
		if li.Hotel != nil {
			return li.Hotel.VATAmount
		}
	}
	return decimal.Zero
}

// Clone returns a deep value copy of the line item. Persisted invoices must
// never share pointers with a live draft.
func (li LineItem) Clone() LineItem {
	out := LineItem{Kind: li.Kind}
	if li.Flight != nil {
		flight := *li.Flight
		flight.TravelDate = cloneTime(li.Flight.TravelDate)
		flight.ReturnDate = cloneTime(li.Flight.ReturnDate)
		out.Flight = &flight
	}
	if li.Activity != nil {
		activity := *li.Activity
		out.Activity = &activity
	}
	if li.Hotel != nil {
		hotel := *li.Hotel
		hotel.CheckInDate = cloneTime(li.Hotel.CheckInDate)
		hotel.CheckOutDate = cloneTime(li.Hotel.CheckOutDate)
		out.Hotel = &hotel
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
