package repo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

func TestMonthStats_ErrorWithoutTables(t *testing.T) {
	db := newTestDB(t, false)
	if _, err := MonthStats(context.Background(), db, day(t, "2026-01-01"), day(t, "2026-01-31")); err == nil {
		t.Fatalf("expected error due to missing bookings table")
	}
}

func TestMonthStats_Empty(t *testing.T) {
	db := newTestDB(t, true)
	st, err := MonthStats(context.Background(), db, day(t, "2026-01-01"), day(t, "2026-01-31"))
	if err != nil {
		t.Fatalf("MonthStats: %v", err)
	}
	if st.Count != 0 || st.LatestCreatedAt != "" || st.Clients != "" {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestMonthStats_CountLatestAndClientRename(t *testing.T) {
	db := newTestDB(t, true)
	ctx := context.Background()
	from, to := day(t, "2026-01-01"), day(t, "2026-01-31")

	t1 := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 12, 2, 8, 0, 0, 0, time.UTC)

	id, _ := AddOrGetClient(ctx, db, "Ana", "Lopez", "0412")
	rec := ReservationRecord{Amount: decimal.NewFromInt(1), PaymentStatus: domain.PaymentComplete, PaymentMethod: domain.MethodCash}
	_ = AddReservation(ctx, db, day(t, "2026-01-05"), rec, id, t2)
	_ = SetAvailability(ctx, db, day(t, "2026-01-06"), false, t1)
	_ = SetAvailability(ctx, db, day(t, "2026-02-06"), false, t2.Add(time.Hour)) // outside range

	before, err := MonthStats(ctx, db, from, to)
	if err != nil {
		t.Fatalf("MonthStats: %v", err)
	}
	if before.Count != 2 {
		t.Fatalf("expected 2 records, got %d", before.Count)
	}
	if before.LatestCreatedAt != domain.FormatTimestamp(t2) {
		t.Fatalf("latest = %q, want %q", before.LatestCreatedAt, domain.FormatTimestamp(t2))
	}

	// Renaming the client through another booking must change the summary.
	if _, err := AddOrGetClient(ctx, db, "Ana Maria", "Lopez", "0412"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	after, _ := MonthStats(ctx, db, from, to)
	if after.Count != before.Count || after.LatestCreatedAt != before.LatestCreatedAt {
		t.Fatalf("rename should not touch count/latest: %+v vs %+v", after, before)
	}
	if after.Clients == before.Clients {
		t.Fatalf("client summary should change after rename")
	}
}
