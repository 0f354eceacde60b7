// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them instead of
// on messages. Validation codes reuse validation.Kind values verbatim, and
// their messages are the fixed Spanish labels shown next to the form.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "reference_too_short",
//	  "message": "Referencia debe tener al menos 6 dígitos."
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumbayah/booking-calendar/internal/services"
	"github.com/kumbayah/booking-calendar/internal/validation"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeInvalidDate     = "invalid_date"
	ErrCodeDayReserved     = "day_reserved"
	ErrCodeNotCurrentMonth = "not_current_month"
	ErrCodePaymentUnknown  = "payment_unknown"
	ErrCodeNameRequired    = string(validation.NameRequired)
	ErrCodePhoneDigits     = string(validation.PhoneDigits)
	ErrCodeAmountInvalid   = string(validation.AmountInvalid)
	ErrCodeReferenceShort  = string(validation.ReferenceTooShort)
)

// failWith translates a service error into the matching status and code.
// Anything unrecognised is a 500 whose detail only reaches the log.
func failWith(c *gin.Context, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusUnprocessableEntity, string(ve.Kind), ve.Message)
	case errors.Is(err, services.ErrUnknownPayment):
		fail(c, http.StatusUnprocessableEntity, ErrCodePaymentUnknown, "estado o método de pago desconocido")
	case errors.Is(err, services.ErrInvalidDate):
		fail(c, http.StatusBadRequest, ErrCodeInvalidDate, err.Error())
	case errors.Is(err, services.ErrReservationNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "reservation not found")
	case errors.Is(err, services.ErrClientNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "client not found")
	case errors.Is(err, services.ErrDayReserved):
		fail(c, http.StatusConflict, ErrCodeDayReserved, "day holds a reservation")
	case errors.Is(err, services.ErrNotCurrentMonth):
		fail(c, http.StatusConflict, ErrCodeNotCurrentMonth, "date is outside the month being shown")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
