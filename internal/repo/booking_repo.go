// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the Reservation Ledger: at most one Day
// Record per calendar date, exposed to callers as a domain.DayState.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

// ErrDayReserved is returned when an operation would clobber a reservation.
var ErrDayReserved = errors.New("day holds a reservation")

// ReservationRecord is the payment part of a reservation; the client is
// passed separately by id.
type ReservationRecord struct {
	Amount        decimal.Decimal
	PaymentStatus domain.PaymentStatus
	PaymentMethod domain.PaymentMethod
	Reference     string
}

// upsertColumns are replaced wholesale when a date already has a record.
var upsertColumns = []string{"client_id", "amount", "payment_status", "payment_method", "reference", "created_at"}

func findBooking(ctx context.Context, db *gorm.DB, date time.Time) (*domain.Booking, error) {
	var rows []domain.Booking
	err := db.WithContext(ctx).
		Preload("Client").
		Where("date = ?", domain.DateKey(date)).
		Limit(1).
		Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// GetDayState returns the state of date. Dates without a record are available.
func GetDayState(ctx context.Context, db *gorm.DB, date time.Time) (domain.DayState, error) {
	b, err := findBooking(ctx, db, date)
	if err != nil {
		return domain.DayState{}, err
	}
	return domain.StateFromBooking(b), nil
}

// IsAvailable reports whether date has no Day Record at all.
func IsAvailable(ctx context.Context, db *gorm.DB, date time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("date = ?", domain.DateKey(date)).
		Count(&n).Error
	return n == 0, err
}

// GetReservation returns the reservation on date, or ErrNotFound when the
// day is available or blocked.
func GetReservation(ctx context.Context, db *gorm.DB, date time.Time) (*domain.Reservation, error) {
	st, err := GetDayState(ctx, db, date)
	if err != nil {
		return nil, err
	}
	if st.Kind != domain.DayReserved {
		return nil, ErrNotFound
	}
	return st.Reservation, nil
}

// AddReservation writes the reservation for date, replacing any previous
// record (reserved or blocked). created_at is reset to now on every write,
// edits included.
func AddReservation(ctx context.Context, db *gorm.DB, date time.Time, rec ReservationRecord, clientID uint, now time.Time) error {
	row := &domain.Booking{
		Date:          domain.DateKey(date),
		ClientID:      &clientID,
		Amount:        rec.Amount,
		PaymentStatus: string(rec.PaymentStatus),
		PaymentMethod: string(rec.PaymentMethod),
		Reference:     rec.Reference,
		CreatedAt:     domain.FormatTimestamp(now),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(row).Error
}

// DeleteReservation removes whatever record date holds. Deleting an
// available day is a no-op.
func DeleteReservation(ctx context.Context, db *gorm.DB, date time.Time) error {
	return db.WithContext(ctx).
		Where("date = ?", domain.DateKey(date)).
		Delete(&domain.Booking{}).Error
}

// SetAvailability marks date available or unavailable.
//
// available=true removes a blocked record and leaves reservations alone.
// available=false inserts a blocked record on an available day, is a no-op
// on a blocked day, and returns ErrDayReserved on a reserved day.
func SetAvailability(ctx context.Context, db *gorm.DB, date time.Time, available bool, now time.Time) error {
	key := domain.DateKey(date)
	if available {
		// A client id that no longer resolves is a blocked day too.
		return db.WithContext(ctx).
			Where("date = ? AND (client_id IS NULL OR client_id NOT IN (SELECT id FROM clients))", key).
			Delete(&domain.Booking{}).Error
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st, err := GetDayState(ctx, tx, date)
		if err != nil {
			return err
		}
		switch st.Kind {
		case domain.DayReserved:
			return ErrDayReserved
		case domain.DayBlocked:
			return nil
		}
		return tx.Create(&domain.Booking{
			Date:      key,
			Amount:    decimal.Zero,
			CreatedAt: domain.FormatTimestamp(now),
		}).Error
	})
}

// ListDayStates returns the state of every date in [from, to] that holds a
// record, keyed by ISO date. Dates missing from the map are available.
func ListDayStates(ctx context.Context, db *gorm.DB, from, to time.Time) (map[string]domain.DayState, error) {
	var rows []domain.Booking
	err := db.WithContext(ctx).
		Preload("Client").
		Where("date BETWEEN ? AND ?", domain.DateKey(from), domain.DateKey(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.DayState, len(rows))
	for i := range rows {
		out[rows[i].Date] = domain.StateFromBooking(&rows[i])
	}
	return out, nil
}
