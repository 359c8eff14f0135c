package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Recalculate returns a copy of the line item with every derived field
// recomputed from its inputs. It is pure and idempotent: recomputing an
// already-recomputed item yields the same values.
//
// Negative quantities, prices or VAT rates are rejected rather than clamped.
// Inputs cross the validation boundary before they reach this function, so a
// negative value here is an operator or programming error that must surface.
func Recalculate(item LineItem) (LineItem, error) {
	out := item.Clone()
	switch out.Kind {
	case ItemKindFlight:
		if out.Flight == nil {
			return LineItem{}, ErrInvalidItemKind
		}
		if err := recalcFlight(out.Flight); err != nil {
			return LineItem{}, err
		}
	case ItemKindActivity:
		if out.Activity == nil {
			return LineItem{}, ErrInvalidItemKind
		}
		if err := recalcActivity(out.Activity); err != nil {
			return LineItem{}, err
		}
	case ItemKindHotel:
		if out.Hotel == nil {
			return LineItem{}, ErrInvalidItemKind
		}
		if err := recalcHotel(out.Hotel); err != nil {
			return LineItem{}, err
		}
	default:
		return LineItem{}, ErrInvalidItemKind
	}
	return out, nil
}

func recalcFlight(f *FlightItem) error {
	if f.BuyPrice.IsNegative() || f.SellPrice.IsNegative() {
		return ErrNegativePrice
	}
	// BuyPrice is margin bookkeeping only; the customer pays the sell price
	// and no VAT applies to flight lines.
	f.Total = f.SellPrice
	return nil
}

func recalcActivity(a *ActivityItem) error {
	if a.ChildQty < 0 || a.AdultQty < 0 {
		return ErrNegativeQuantity
	}
	if a.ChildPrice.IsNegative() || a.AdultPrice.IsNegative() {
		return ErrNegativePrice
	}
	if a.VATPercentage.IsNegative() {
		return ErrNegativeVATRate
	}

	a.ChildTotal = a.ChildPrice.Mul(decimal.NewFromInt(a.ChildQty))
	a.AdultTotal = a.AdultPrice.Mul(decimal.NewFromInt(a.AdultQty))
	subtotal := a.ChildTotal.Add(a.AdultTotal)
	a.VATAmount = subtotal.Mul(a.VATPercentage).Div(hundred)
	a.Total = subtotal.Add(a.VATAmount)
	return nil
}

func recalcHotel(h *HotelItem) error {
	if h.PricePerNight.IsNegative() {
		return ErrNegativePrice
	}
	if h.VATPercentage.IsNegative() {
		return ErrNegativeVATRate
	}

	h.Nights = StayNights(h.CheckInDate, h.CheckOutDate)
	subtotal := h.PricePerNight.Mul(decimal.NewFromInt(h.Nights))
	h.VATAmount = subtotal.Mul(h.VATPercentage).Div(hundred)
	h.Total = subtotal.Add(h.VATAmount)
	return nil
}

// StayNights returns the number of billable nights between check-in and
// check-out, rounding partial days up. Missing or reversed dates count as
// zero nights; validation rejects them before submit, calculation never
// panics on them.
func StayNights(checkIn, checkOut *time.Time) int64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	span := checkOut.Sub(*checkIn)
	if span <= 0 {
		return 0
	}
	nights := int64(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// ValidateItem applies the submit-time checks that block materialization:
// reversed stay ranges and missing descriptive fields. Calculation tolerates
// these states; a persisted invoice must not.
func ValidateItem(item LineItem) error {
	switch item.Kind {
	case ItemKindFlight:
		if item.Flight == nil {
			return ErrInvalidItemKind
		}
		if item.Flight.GuestName == "" {
			return ErrMissingGuestName
		}
		if item.Flight.BuyPrice.IsNegative() || item.Flight.SellPrice.IsNegative() {
			return ErrNegativePrice
		}
	case ItemKindActivity:
		if item.Activity == nil {
			return ErrInvalidItemKind
		}
		if item.Activity.ItemName == "" {
			return ErrMissingItemName
		}
		if item.Activity.ChildQty < 0 || item.Activity.AdultQty < 0 {
			return ErrNegativeQuantity
		}
		if item.Activity.ChildPrice.IsNegative() || item.Activity.AdultPrice.IsNegative() {
			return ErrNegativePrice
		}
		if item.Activity.VATPercentage.IsNegative() {
			return ErrNegativeVATRate
		}
	case ItemKindHotel:
		if item.Hotel == nil {
			return ErrInvalidItemKind
		}
		if item.Hotel.HotelName == "" {
			return ErrMissingHotelName
		}
		if item.Hotel.CheckInDate == nil || item.Hotel.CheckOutDate == nil {
			return ErrMissingStayDates
		}
		if item.Hotel.CheckOutDate.Before(*item.Hotel.CheckInDate) {
			return ErrInvalidStayRange
		}
		if item.Hotel.Guests < 1 {
			return ErrInvalidGuestCount
		}
		if item.Hotel.PricePerNight.IsNegative() {
			return ErrNegativePrice
		}
		if item.Hotel.VATPercentage.IsNegative() {
			return ErrNegativeVATRate
		}
	default:
		return ErrInvalidItemKind
	}
	return nil
}
