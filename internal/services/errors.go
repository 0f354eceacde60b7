// Package services defines the business logic of the booking calendar.
// This file centralizes service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer. Input problems are reported as *validation.Error and are
// not listed here.
package services

import (
	"errors"

	"github.com/kumbayah/booking-calendar/internal/repo"
)

var (
	// ErrReservationNotFound indicates the date holds no reservation (it is
	// available or blocked).
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrDayReserved is returned when toggling or blocking a day that holds a
	// reservation. It is the ledger's own sentinel so errors.Is matches both.
	ErrDayReserved = repo.ErrDayReserved

	// ErrClientNotFound indicates no client has the requested id.
	ErrClientNotFound = errors.New("client not found")

	// ErrNotCurrentMonth is returned when a toggle targets a date outside the
	// month being shown.
	ErrNotCurrentMonth = errors.New("date is outside the current month")

	// ErrInvalidDate is returned for unparseable dates and inverted ranges.
	ErrInvalidDate = errors.New("invalid date")

	// ErrUnknownPayment is returned when a payment status or method is not
	// part of the fixed vocabulary.
	ErrUnknownPayment = errors.New("unknown payment status or method")
)
