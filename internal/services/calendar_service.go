// Package services – CalendarService
//
// This file implements CalendarService, the Calendar Engine. It composes the
// pure month arithmetic of package calendar with the Reservation Ledger and
// the Client Directory, and owns every mutation of the booking store:
// toggling availability, creating/editing reservations (one upsert), and
// deleting them.
//
// The month being shown is an explicit calendar.Cursor passed in and
// returned; the service itself holds no navigation state.
//
// Observability: public methods are OpenTelemetry-instrumented; spans carry
// the cursor or the ISO date. Mutations are counted in
// calendar_mutations_total(op, outcome) and logged at debug level through
// the request-scoped zerolog logger.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kumbayah/booking-calendar/internal/calendar"
	"github.com/kumbayah/booking-calendar/internal/domain"
	"github.com/kumbayah/booking-calendar/internal/repo"
	"github.com/kumbayah/booking-calendar/internal/validation"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "services/CalendarService"

// mutations counts writes by operation and outcome (ok, rejected, error).
var mutations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calendar_mutations_total",
		Help: "Calendar writes by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

func init() {
	prometheus.MustRegister(mutations)
}

// ClientInput is the client half of the reservation form.
type ClientInput struct {
	FirstName string
	LastName  string
	Phone     string
}

// ReservationInput is the payment half of the reservation form. Amount is the
// raw user text; it is parsed after validation.
type ReservationInput struct {
	Amount        string
	PaymentStatus domain.PaymentStatus
	PaymentMethod domain.PaymentMethod
	Reference     string
}

// CalendarService coordinates the month view and all calendar mutations.
type CalendarService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Location decides which month "now" falls in.
	Location *time.Location
	// Now is the clock; tests replace it.
	Now func() time.Time
}

// NewCalendarService constructs a CalendarService. A nil loc means time.Local.
func NewCalendarService(db *gorm.DB, loc *time.Location) *CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &CalendarService{DB: db, Location: loc, Now: time.Now}
}

func (s *CalendarService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *CalendarService) loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// record updates the mutation counter and logs the outcome.
func record(ctx context.Context, op string, date time.Time, err error) {
	outcome := "ok"
	ev := zerolog.Ctx(ctx).Debug()
	switch {
	case err == nil:
	case validation.KindOf(err) != "",
		errors.Is(err, ErrDayReserved),
		errors.Is(err, ErrNotCurrentMonth),
		errors.Is(err, ErrUnknownPayment):
		outcome = "rejected"
		ev = ev.Str("reason", err.Error())
	default:
		outcome = "error"
		ev = zerolog.Ctx(ctx).Error().Err(err)
	}
	mutations.WithLabelValues(op, outcome).Inc()
	ev.Str("op", op).Str("date", domain.DateKey(date)).Str("outcome", outcome).Msg("calendar mutation")
}

// ParseDay parses an ISO date, mapping failures to ErrInvalidDate.
func ParseDay(s string) (time.Time, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// CurrentCursor returns the cursor for the month containing now.
func (s *CalendarService) CurrentCursor() calendar.Cursor {
	return calendar.At(s.now().In(s.loc()))
}

// PreviousMonth returns the cursor one month before cur.
func (s *CalendarService) PreviousMonth(cur calendar.Cursor) calendar.Cursor { return cur.Prev() }

// NextMonth returns the cursor one month after cur.
func (s *CalendarService) NextMonth(cur calendar.Cursor) calendar.Cursor { return cur.Next() }

// MonthGrid builds the Monday-first weeks for cur. Days of the month carry
// their ledger state; padding days from adjacent months are always available
// and never consult the ledger.
func (s *CalendarService) MonthGrid(ctx context.Context, cur calendar.Cursor) ([][]domain.DayCell, error) {
	ctx, span := startSpan(ctx, "MonthGrid", attribute.String("calendar.month", cur.String()))
	states, err := repo.ListDayStates(ctx, s.DB, cur.First(), cur.Last())
	defer func() { endSpan(span, err) }()
	if err != nil {
		return nil, fmt.Errorf("list day states: %w", err)
	}

	dates := calendar.MonthDates(cur)
	weeks := make([][]domain.DayCell, 0, len(dates))
	for _, week := range dates {
		row := make([]domain.DayCell, 0, len(week))
		for _, d := range week {
			inMonth := cur.Contains(d)
			st := domain.AvailableDay()
			if inMonth {
				if known, ok := states[domain.DateKey(d)]; ok {
					st = known
				}
			}
			row = append(row, domain.NewDayCell(d, inMonth, st))
		}
		weeks = append(weeks, row)
	}
	return weeks, nil
}

// DayStatus refreshes one cell. It always reads the ledger; IsCurrentMonth is
// relative to cur.
func (s *CalendarService) DayStatus(ctx context.Context, cur calendar.Cursor, date time.Time) (domain.DayCell, error) {
	date = domain.CivilDate(date)
	ctx, span := startSpan(ctx, "DayStatus", attribute.String("calendar.date", domain.DateKey(date)))
	st, err := repo.GetDayState(ctx, s.DB, date)
	endSpan(span, err)
	if err != nil {
		return domain.DayCell{}, fmt.Errorf("get day state: %w", err)
	}
	return domain.NewDayCell(date, cur.Contains(date), st), nil
}

// ToggleDayAvailability flips an available day to blocked and a blocked day
// back to available. Dates outside cur's month and reserved days are left
// untouched (ErrNotCurrentMonth, ErrDayReserved). It returns the refreshed
// cell.
func (s *CalendarService) ToggleDayAvailability(ctx context.Context, cur calendar.Cursor, date time.Time) (cell domain.DayCell, err error) {
	date = domain.CivilDate(date)
	ctx, span := startSpan(ctx, "ToggleDayAvailability",
		attribute.String("calendar.month", cur.String()),
		attribute.String("calendar.date", domain.DateKey(date)),
	)
	defer func() {
		record(ctx, "toggle", date, err)
		endSpan(span, err)
	}()

	if !cur.Contains(date) {
		return domain.DayCell{}, ErrNotCurrentMonth
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := repo.GetDayState(ctx, tx, date)
		if err != nil {
			return err
		}
		switch st.Kind {
		case domain.DayReserved:
			return ErrDayReserved
		case domain.DayBlocked:
			return repo.SetAvailability(ctx, tx, date, true, s.now())
		default:
			return repo.SetAvailability(ctx, tx, date, false, s.now())
		}
	})
	if err != nil {
		return domain.DayCell{}, err
	}
	return s.DayStatus(ctx, cur, date)
}

// AddOrUpdateReservation validates the form, resolves the client by phone and
// writes the reservation for date, replacing whatever the date held. Create
// and edit are the same operation. Nothing is written when validation fails.
func (s *CalendarService) AddOrUpdateReservation(ctx context.Context, date time.Time, client ClientInput, in ReservationInput) (res *domain.Reservation, err error) {
	date = domain.CivilDate(date)
	ctx, span := startSpan(ctx, "AddOrUpdateReservation",
		attribute.String("calendar.date", domain.DateKey(date)),
		attribute.String("payment.status", string(in.PaymentStatus)),
		attribute.String("payment.method", string(in.PaymentMethod)),
	)
	defer func() {
		record(ctx, "reserve", date, err)
		endSpan(span, err)
	}()

	if err := validation.ValidateClient(client.FirstName, client.LastName, client.Phone); err != nil {
		return nil, err
	}
	if !in.PaymentStatus.Valid() || !in.PaymentMethod.Valid() {
		return nil, ErrUnknownPayment
	}
	if err := validation.ValidateReservation(in.Amount, in.PaymentMethod, in.Reference); err != nil {
		return nil, err
	}
	amount, err := validation.ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	rec := repo.ReservationRecord{
		Amount:        amount,
		PaymentStatus: in.PaymentStatus,
		PaymentMethod: in.PaymentMethod,
		Reference:     strings.TrimSpace(in.Reference),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clientID, err := repo.AddOrGetClient(ctx, tx, client.FirstName, client.LastName, client.Phone)
		if err != nil {
			return fmt.Errorf("resolve client: %w", err)
		}
		if err := repo.AddReservation(ctx, tx, date, rec, clientID, s.now()); err != nil {
			return fmt.Errorf("write reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res, err = repo.GetReservation(ctx, s.DB, date)
	if err != nil {
		return nil, fmt.Errorf("read back reservation: %w", err)
	}
	return res, nil
}

// DeleteReservation clears date. Deleting a day without a record is a no-op.
func (s *CalendarService) DeleteReservation(ctx context.Context, date time.Time) (err error) {
	date = domain.CivilDate(date)
	ctx, span := startSpan(ctx, "DeleteReservation", attribute.String("calendar.date", domain.DateKey(date)))
	defer func() {
		record(ctx, "delete", date, err)
		endSpan(span, err)
	}()
	return repo.DeleteReservation(ctx, s.DB, date)
}

// Reservation returns the reservation on date or ErrReservationNotFound.
func (s *CalendarService) Reservation(ctx context.Context, date time.Time) (*domain.Reservation, error) {
	date = domain.CivilDate(date)
	ctx, span := startSpan(ctx, "Reservation", attribute.String("calendar.date", domain.DateKey(date)))
	defer span.End()

	r, err := repo.GetReservation(ctx, s.DB, date)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return r, nil
}

// Client returns the client with id or ErrClientNotFound.
func (s *CalendarService) Client(ctx context.Context, id uint) (*domain.Client, error) {
	ctx, span := startSpan(ctx, "Client", attribute.Int64("client.id", int64(id)))
	defer span.End()

	c, err := repo.GetClient(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return c, nil
}

// DaysInRange returns the blocked and reserved days in [from, to], ordered by
// date.
func (s *CalendarService) DaysInRange(ctx context.Context, from, to time.Time) ([]domain.DayEntry, error) {
	from, to = domain.CivilDate(from), domain.CivilDate(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range %s..%s", ErrInvalidDate, domain.DateKey(from), domain.DateKey(to))
	}
	ctx, span := startSpan(ctx, "DaysInRange",
		attribute.String("range.from", domain.DateKey(from)),
		attribute.String("range.to", domain.DateKey(to)),
	)
	defer span.End()

	states, err := repo.ListDayStates(ctx, s.DB, from, to)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	out := make([]domain.DayEntry, 0, len(states))
	for key, st := range states {
		d, err := domain.ParseDate(key)
		if err != nil {
			continue
		}
		out = append(out, domain.DayEntry{Date: d, State: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// MonthVersion returns an opaque token that changes whenever anything shown
// in cur's grid changes. Handlers wrap it in a weak ETag.
func (s *CalendarService) MonthVersion(ctx context.Context, cur calendar.Cursor) (string, error) {
	st, err := repo.MonthStats(ctx, s.DB, cur.First(), cur.Last())
	if err != nil {
		return "", err
	}
	sum := uuid.NewSHA1(uuid.NameSpaceOID, []byte(st.LatestCreatedAt+"|"+st.Clients))
	return fmt.Sprintf("calendar:%s:%d:%s", cur, st.Count, sum.String()[:8]), nil
}
