package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

func day(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(iso)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", iso, err)
	}
	return d
}

var fixedNow = time.Date(2025, 12, 20, 9, 30, 0, 123456000, time.UTC)

func TestLedger_NoRecordIsAvailable(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-03-15")

	ok, err := IsAvailable(ctx, db, d)
	if err != nil || !ok {
		t.Fatalf("IsAvailable = %v, %v; want true", ok, err)
	}
	if _, err := GetReservation(ctx, db, d); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetReservation on empty day: want ErrNotFound, got %v", err)
	}
	st, err := GetDayState(ctx, db, d)
	if err != nil || st.Kind != domain.DayAvailable || st.Reservation != nil {
		t.Fatalf("GetDayState = %+v, %v", st, err)
	}
}

// Reserve 2026-01-01 for Ana Lopez, read it back, delete it.
func TestLedger_EndToEndReservation(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-01-01")

	clientID, err := AddOrGetClient(ctx, db, "Ana", "Lopez", "04121234567")
	if err != nil {
		t.Fatalf("AddOrGetClient: %v", err)
	}
	rec := ReservationRecord{
		Amount:        decimal.RequireFromString("100.0"),
		PaymentStatus: domain.PaymentComplete,
		PaymentMethod: domain.MethodCash,
		Reference:     "",
	}
	if err := AddReservation(ctx, db, d, rec, clientID, fixedNow); err != nil {
		t.Fatalf("AddReservation: %v", err)
	}

	got, err := GetReservation(ctx, db, d)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if got.Date != "2026-01-01" || got.ClientID != clientID ||
		got.FirstName != "Ana" || got.LastName != "Lopez" || got.Phone != "04121234567" {
		t.Fatalf("client fields mismatch: %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("amount = %s, want 100", got.Amount)
	}
	if got.PaymentStatus != domain.PaymentComplete || got.PaymentMethod != domain.MethodCash || got.Reference != "" {
		t.Fatalf("payment fields mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(fixedNow) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, fixedNow)
	}
	if ok, _ := IsAvailable(ctx, db, d); ok {
		t.Fatalf("reserved day must not be available")
	}

	if err := DeleteReservation(ctx, db, d); err != nil {
		t.Fatalf("DeleteReservation: %v", err)
	}
	if ok, _ := IsAvailable(ctx, db, d); !ok {
		t.Fatalf("day should be available after delete")
	}
}

func TestAddReservation_UpsertReplacesAndResetsCreatedAt(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-02-14")

	ana, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "111")
	luis, _ := AddOrGetClient(ctx, db, "Luis", "Perez", "222")

	first := ReservationRecord{Amount: decimal.NewFromInt(50), PaymentStatus: domain.PaymentHalf, PaymentMethod: domain.MethodMobilePayment, Reference: "123456"}
	if err := AddReservation(ctx, db, d, first, ana, fixedNow); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	later := fixedNow.Add(time.Hour)
	second := ReservationRecord{Amount: decimal.RequireFromString("75.5"), PaymentStatus: domain.PaymentNone, PaymentMethod: domain.MethodCash}
	if err := AddReservation(ctx, db, d, second, luis, later); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := GetReservation(ctx, db, d)
	if err != nil {
		t.Fatalf("GetReservation: %v", err)
	}
	if got.ClientID != luis || got.FirstName != "Luis" {
		t.Fatalf("client not replaced: %+v", got)
	}
	if !got.Amount.Equal(decimal.RequireFromString("75.5")) || got.PaymentStatus != domain.PaymentNone || got.Reference != "" {
		t.Fatalf("payment not replaced: %+v", got)
	}
	if !got.CreatedAt.Equal(later) {
		t.Fatalf("created_at should reset on every upsert: got %v want %v", got.CreatedAt, later)
	}

	var n int64
	db.Model(&domain.Booking{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected a single record for the date, got %d", n)
	}
}

func TestAddReservation_OverBlockedDay(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-04-01")

	if err := SetAvailability(ctx, db, d, false, fixedNow); err != nil {
		t.Fatalf("block: %v", err)
	}
	id, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "")
	rec := ReservationRecord{Amount: decimal.NewFromInt(10), PaymentStatus: domain.PaymentComplete, PaymentMethod: domain.MethodCash}
	if err := AddReservation(ctx, db, d, rec, id, fixedNow); err != nil {
		t.Fatalf("AddReservation: %v", err)
	}
	st, _ := GetDayState(ctx, db, d)
	if st.Kind != domain.DayReserved {
		t.Fatalf("expected reserved, got %s", st.Kind)
	}
}

func TestDeleteReservation_NoRecordIsNoop(t *testing.T) {
	db := newTestDB(t, true)
	if err := DeleteReservation(context.Background(), db, day(t, "2030-01-01")); err != nil {
		t.Fatalf("DeleteReservation on empty day: %v", err)
	}
}

func TestSetAvailability_RoundTrip(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-05-05")

	if err := SetAvailability(ctx, db, d, false, fixedNow); err != nil {
		t.Fatalf("block: %v", err)
	}
	st, _ := GetDayState(ctx, db, d)
	if st.Kind != domain.DayBlocked || st.Reservation != nil {
		t.Fatalf("expected blocked without reservation, got %+v", st)
	}
	if _, err := GetReservation(ctx, db, d); !errors.Is(err, ErrNotFound) {
		t.Fatalf("blocked day has no reservation, got %v", err)
	}
	// blocking twice is a no-op
	if err := SetAvailability(ctx, db, d, false, fixedNow); err != nil {
		t.Fatalf("block again: %v", err)
	}
	if err := SetAvailability(ctx, db, d, true, fixedNow); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if ok, _ := IsAvailable(ctx, db, d); !ok {
		t.Fatalf("round trip should leave the day available")
	}
}

func TestSetAvailability_ReservedDay(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-06-10")

	id, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "123")
	rec := ReservationRecord{Amount: decimal.NewFromInt(1), PaymentStatus: domain.PaymentComplete, PaymentMethod: domain.MethodCash}
	if err := AddReservation(ctx, db, d, rec, id, fixedNow); err != nil {
		t.Fatalf("AddReservation: %v", err)
	}

	if err := SetAvailability(ctx, db, d, false, fixedNow); !errors.Is(err, ErrDayReserved) {
		t.Fatalf("blocking a reserved day: want ErrDayReserved, got %v", err)
	}
	if err := SetAvailability(ctx, db, d, true, fixedNow); err != nil {
		t.Fatalf("unblocking a reserved day: %v", err)
	}
	if _, err := GetReservation(ctx, db, d); err != nil {
		t.Fatalf("reservation must survive both calls: %v", err)
	}
}

func TestDanglingClientIsBlocked(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	d := day(t, "2026-07-07")

	ghost := uint(999)
	if err := db.Create(&domain.Booking{Date: domain.DateKey(d), ClientID: &ghost, CreatedAt: domain.FormatTimestamp(fixedNow)}).Error; err != nil {
		t.Fatalf("seed dangling row: %v", err)
	}
	st, err := GetDayState(ctx, db, d)
	if err != nil || st.Kind != domain.DayBlocked {
		t.Fatalf("dangling client should read as blocked, got %+v, %v", st, err)
	}
	if err := SetAvailability(ctx, db, d, true, fixedNow); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if ok, _ := IsAvailable(ctx, db, d); !ok {
		t.Fatalf("dangling row should be removable like any blocked day")
	}
}

func TestListDayStates_Range(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()

	id, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "1")
	rec := ReservationRecord{Amount: decimal.NewFromInt(1), PaymentStatus: domain.PaymentHalf, PaymentMethod: domain.MethodCash}
	_ = AddReservation(ctx, db, day(t, "2026-01-10"), rec, id, fixedNow)
	_ = SetAvailability(ctx, db, day(t, "2026-01-31"), false, fixedNow)
	_ = SetAvailability(ctx, db, day(t, "2026-02-01"), false, fixedNow) // outside

	got, err := ListDayStates(ctx, db, day(t, "2026-01-01"), day(t, "2026-01-31"))
	if err != nil {
		t.Fatalf("ListDayStates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 states in January, got %d: %+v", len(got), got)
	}
	if got["2026-01-10"].Kind != domain.DayReserved || got["2026-01-10"].Reservation.FirstName != "Ana" {
		t.Fatalf("unexpected state for 01-10: %+v", got["2026-01-10"])
	}
	if got["2026-01-31"].Kind != domain.DayBlocked {
		t.Fatalf("inclusive upper bound lost: %+v", got)
	}
}
