package server

import (
	"errors"
	"net/http"

	billingdomain "github.com/anish-1308/ibilling/internal/billing/domain"
	companydomain "github.com/anish-1308/ibilling/internal/company/domain"
	customerdomain "github.com/anish-1308/ibilling/internal/customer/domain"
	inventorydomain "github.com/anish-1308/ibilling/internal/inventory/domain"
	invoicedomain "github.com/anish-1308/ibilling/internal/invoice/domain"
	supplierdomain "github.com/anish-1308/ibilling/internal/supplier/domain"
	tourdomain "github.com/anish-1308/ibilling/internal/tour/domain"
	traveldomain "github.com/anish-1308/ibilling/internal/travelservice/domain"
	userdomain "github.com/anish-1308/ibilling/internal/user/domain"
	"github.com/gin-gonic/gin"
)

// apiError is the wire shape of every non-2xx response.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Message }

var (
	ErrNotFound           = &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
	ErrServiceUnavailable = &apiError{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "service unavailable"}
)

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError translates service errors to HTTP responses. Unknown
// errors become an opaque 500 so internals never leak.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	switch {
	case isNotFoundError(err):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": apiError{
			Code:    err.Error(),
			Message: "resource not found",
		}})
	case isUnauthorizedError(err):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apiError{
			Code:    err.Error(),
			Message: "unauthorized",
		}})
	case isValidationError(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apiError{
			Code:    err.Error(),
			Message: "validation failed",
		}})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apiError{
			Code:    "internal_error",
			Message: "internal server error",
		}})
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrCustomerNotFound),
		errors.Is(err, supplierdomain.ErrSupplierNotFound),
		errors.Is(err, tourdomain.ErrTourNotFound),
		errors.Is(err, traveldomain.ErrServiceNotFound),
		errors.Is(err, inventorydomain.ErrItemNotFound),
		errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, companydomain.ErrProfileMissing):
		return true
	}
	return false
}

func isUnauthorizedError(err error) bool {
	return errors.Is(err, userdomain.ErrInvalidCredentials) ||
		errors.Is(err, userdomain.ErrUserInactive)
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, billingdomain.ErrInvalidItemKind),
		errors.Is(err, billingdomain.ErrInvalidInvoiceType),
		errors.Is(err, billingdomain.ErrItemKindMismatch),
		errors.Is(err, billingdomain.ErrNegativeQuantity),
		errors.Is(err, billingdomain.ErrNegativePrice),
		errors.Is(err, billingdomain.ErrNegativeVATRate),
		errors.Is(err, billingdomain.ErrInvalidStayRange),
		errors.Is(err, billingdomain.ErrMissingGuestName),
		errors.Is(err, billingdomain.ErrMissingItemName),
		errors.Is(err, billingdomain.ErrMissingHotelName),
		errors.Is(err, billingdomain.ErrMissingStayDates),
		errors.Is(err, billingdomain.ErrInvalidGuestCount):
		return true
	case errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrEmptyDraft),
		errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, invoicedomain.ErrNotEditable),
		errors.Is(err, invoicedomain.ErrAlreadySent):
		return true
	case errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidType):
		return true
	case errors.Is(err, supplierdomain.ErrInvalidID),
		errors.Is(err, supplierdomain.ErrInvalidName):
		return true
	case errors.Is(err, tourdomain.ErrInvalidID),
		errors.Is(err, tourdomain.ErrInvalidTitle),
		errors.Is(err, tourdomain.ErrInvalidCategory),
		errors.Is(err, tourdomain.ErrInvalidPrice):
		return true
	case errors.Is(err, traveldomain.ErrInvalidID),
		errors.Is(err, traveldomain.ErrInvalidName),
		errors.Is(err, traveldomain.ErrInvalidCategory),
		errors.Is(err, traveldomain.ErrInvalidPrice):
		return true
	case errors.Is(err, inventorydomain.ErrInvalidID),
		errors.Is(err, inventorydomain.ErrInvalidName),
		errors.Is(err, inventorydomain.ErrInvalidItemType),
		errors.Is(err, inventorydomain.ErrInvalidQuantity),
		errors.Is(err, inventorydomain.ErrInvalidPrice):
		return true
	case errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, userdomain.ErrInvalidName),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrWeakPassword),
		errors.Is(err, userdomain.ErrEmailTaken):
		return true
	case errors.Is(err, companydomain.ErrInvalidName),
		errors.Is(err, companydomain.ErrInvalidTaxRate):
		return true
	}
	return false
}
