// Package validation checks client and reservation input before anything is
// written. The functions are pure: no storage, no clock, no logging.
//
// Every failure is an *Error carrying a stable Kind (for programmatic
// handling) and the fixed Spanish message shown to the user.
package validation

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

// Kind identifies a validation failure.
type Kind string

const (
	NameRequired      Kind = "name_required"
	PhoneDigits       Kind = "phone_digits"
	AmountInvalid     Kind = "amount_invalid"
	ReferenceTooShort Kind = "reference_too_short"
)

// messages are the user-facing labels for each kind.
var messages = map[Kind]string{
	NameRequired:      "Nombre y apellido son obligatorios.",
	PhoneDigits:       "Teléfono debe contener sólo dígitos.",
	AmountInvalid:     "Monto inválido.",
	ReferenceTooShort: "Referencia debe tener al menos 6 dígitos.",
}

// Error is a rejected input.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(k Kind) *Error { return &Error{Kind: k, Message: messages[k]} }

// KindOf extracts the Kind from err, or "" when err is not a validation error.
func KindOf(err error) Kind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}

// ValidateClient requires both names. The phone may be empty (walk-in
// bookings without a number); when given it must be digits only.
func ValidateClient(firstName, lastName, phone string) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return newError(NameRequired)
	}
	if phone = strings.TrimSpace(phone); phone != "" && !isDigits(phone) {
		return newError(PhoneDigits)
	}
	return nil
}

// ValidateReservation checks that amountText is a decimal number and that
// methods needing a reference carry one of at least MinReferenceLength
// digits.
func ValidateReservation(amountText string, method domain.PaymentMethod, reference string) error {
	if _, err := ParseAmount(amountText); err != nil {
		return err
	}
	if RequiresReference(method) && !validReference(reference) {
		return newError(ReferenceTooShort)
	}
	return nil
}

// ParseAmount converts user input into an amount. The amount column is a
// REAL, so values that do not fit a finite float64 are rejected.
func ParseAmount(amountText string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amountText))
	if err != nil {
		return decimal.Zero, newError(AmountInvalid)
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, newError(AmountInvalid)
	}
	return d, nil
}

// RequiresReference reports whether method needs a payment reference.
func RequiresReference(method domain.PaymentMethod) bool {
	return method.RequiresReference()
}

func validReference(reference string) bool {
	reference = strings.TrimSpace(reference)
	return len(reference) >= domain.MinReferenceLength && isDigits(reference)
}

// isDigits reports whether s is non-empty and ASCII digits only.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
