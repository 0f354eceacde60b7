package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date used as the bookings primary key.
const DateLayout = "2006-01-02"

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// legacyTimestampLayouts covers naive UTC timestamps written by older releases.
var legacyTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
}

// ParseDate parses an ISO calendar date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// DateKey formats t as the ISO date used to key day records.
func DateKey(t time.Time) string { return t.Format(DateLayout) }

// CivilDate drops the clock and zone from t, keeping its wall-clock date.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatTimestamp renders t as the UTC ISO 8601 text stored in created_at.
func FormatTimestamp(t time.Time) string { return t.UTC().Format(timestampLayout) }

// ParseTimestamp reads a stored created_at value. Naive values are UTC.
// Unparseable input yields the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range legacyTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// PaymentStatus is how much of a reservation has been paid.
type PaymentStatus string

const (
	PaymentComplete PaymentStatus = "Completo"
	PaymentHalf     PaymentStatus = "Mitad"
	PaymentNone     PaymentStatus = "Nada"
)

// PaymentStatuses lists the accepted statuses in display order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentComplete, PaymentHalf, PaymentNone}
}

// Valid reports whether s belongs to the fixed status vocabulary.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentComplete, PaymentHalf, PaymentNone:
		return true
	}
	return false
}

// PaymentMethod is how a reservation is (or will be) paid.
type PaymentMethod string

const (
	MethodMobilePayment PaymentMethod = "PagoMovil"
	MethodCash          PaymentMethod = "Efectivo"
	MethodTransfer      PaymentMethod = "Transferencia"
)

// MinReferenceLength is the shortest accepted payment reference.
const MinReferenceLength = 6

// PaymentMethods lists the accepted methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodMobilePayment, MethodCash, MethodTransfer}
}

// Valid reports whether m belongs to the fixed method vocabulary.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodMobilePayment, MethodCash, MethodTransfer:
		return true
	}
	return false
}

// RequiresReference reports whether m needs a numeric payment reference.
func (m PaymentMethod) RequiresReference() bool {
	return m == MethodMobilePayment || m == MethodTransfer
}

// Reservation is the joined view of a reserved day and its client.
type Reservation struct {
	Date          string          `json:"date"`
	ClientID      uint            `json:"client_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Phone         string          `json:"phone"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DisplayName is the client's full name as shown in a day cell.
func (r Reservation) DisplayName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// DayKind tags the three states a calendar day can be in.
type DayKind string

const (
	DayAvailable DayKind = "available"
	DayBlocked   DayKind = "blocked"
	DayReserved  DayKind = "reserved"
)

// DayState is the logical state of one date. Reservation is set only when
// Kind is DayReserved; build values with AvailableDay, BlockedDay and
// ReservedDay.
type DayState struct {
	Kind        DayKind      `json:"kind"`
	Reservation *Reservation `json:"reservation,omitempty"`
}

// AvailableDay is the state of a date without a day record.
func AvailableDay() DayState { return DayState{Kind: DayAvailable} }

// BlockedDay is the state of a date manually marked unavailable.
func BlockedDay() DayState { return DayState{Kind: DayBlocked} }

// ReservedDay is the state of a date holding r.
func ReservedDay(r Reservation) DayState { return DayState{Kind: DayReserved, Reservation: &r} }

// IsAvailable reports whether the date has no day record at all.
func (s DayState) IsAvailable() bool { return s.Kind != DayBlocked && s.Kind != DayReserved }

// StateFromBooking converts a stored row into its DayState. A nil row is an
// available day; a row without a (resolvable) client is a blocked day.
func StateFromBooking(b *Booking) DayState {
	if b == nil {
		return AvailableDay()
	}
	if b.ClientID == nil || b.Client == nil {
		return BlockedDay()
	}
	return ReservedDay(Reservation{
		Date:          b.Date,
		ClientID:      b.Client.ID,
		FirstName:     b.Client.FirstName,
		LastName:      b.Client.LastName,
		Phone:         b.Client.PhoneValue(),
		Amount:        b.Amount,
		PaymentStatus: PaymentStatus(b.PaymentStatus),
		PaymentMethod: PaymentMethod(b.PaymentMethod),
		Reference:     b.Reference,
		CreatedAt:     ParseTimestamp(b.CreatedAt),
	})
}

// DayEntry pairs a date with its state; range reads return these in date
// order.
type DayEntry struct {
	Date  time.Time
	State DayState
}

// CellTone is the colour class a UI paints a day cell with.
type CellTone string

const (
	ToneOtherMonth CellTone = "other_month"
	TonePaid       CellTone = "paid"
	TonePartial    CellTone = "partial"
	ToneBlocked    CellTone = "blocked"
	ToneAvailable  CellTone = "available"
)

// ToneFor classifies a cell: fully paid reservations apart from partial or
// unpaid ones, then blocked, then available. Padding days are always
// ToneOtherMonth.
func ToneFor(isCurrentMonth bool, st DayState) CellTone {
	switch {
	case !isCurrentMonth:
		return ToneOtherMonth
	case st.Kind == DayReserved && st.Reservation != nil:
		if st.Reservation.PaymentStatus == PaymentComplete {
			return TonePaid
		}
		return TonePartial
	case st.Kind == DayBlocked:
		return ToneBlocked
	default:
		return ToneAvailable
	}
}

// DayCell is one square of the month grid.
type DayCell struct {
	Date           time.Time    `json:"-"`
	ISODate        string       `json:"date"`
	Day            int          `json:"day"`
	IsCurrentMonth bool         `json:"is_current_month"`
	IsAvailable    bool         `json:"is_available"`
	State          DayKind      `json:"state"`
	Reservation    *Reservation `json:"reservation,omitempty"`
	Tone           CellTone     `json:"tone"`
}

// NewDayCell assembles a cell for date from its state.
func NewDayCell(date time.Time, isCurrentMonth bool, st DayState) DayCell {
	cell := DayCell{
		Date:           date,
		ISODate:        DateKey(date),
		Day:            date.Day(),
		IsCurrentMonth: isCurrentMonth,
		IsAvailable:    st.IsAvailable(),
		State:          st.Kind,
		Reservation:    st.Reservation,
		Tone:           ToneFor(isCurrentMonth, st),
	}
	if cell.State == "" {
		cell.State = DayAvailable
	}
	return cell
}
