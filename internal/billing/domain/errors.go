package domain

import "errors"

var (
	ErrInvalidItemKind    = errors.New("invalid_item_kind")
	ErrInvalidInvoiceType = errors.New("invalid_invoice_type")
	ErrItemKindMismatch   = errors.New("item_kind_mismatch")
	ErrNegativeQuantity   = errors.New("negative_quantity")
	ErrNegativePrice      = errors.New("negative_price")
	ErrNegativeVATRate    = errors.New("negative_vat_rate")
	ErrInvalidStayRange   = errors.New("invalid_stay_range")
	ErrMissingGuestName   = errors.New("missing_guest_name")
	ErrMissingItemName    = errors.New("missing_item_name")
	ErrMissingHotelName   = errors.New("missing_hotel_name")
	ErrMissingStayDates   = errors.New("missing_stay_dates")
	ErrInvalidGuestCount  = errors.New("invalid_guest_count")
)
