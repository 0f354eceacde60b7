// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

// RangeStats summarises the Day Records of a date range.
//
// Fields:
//   - Count:           number of records (blocked + reserved)
//   - LatestCreatedAt: greatest created_at text, "" when Count is 0
//   - Clients:         concatenated id/name/phone of the referenced clients,
//     so renaming a client changes the summary even though no booking row
//     was touched
type RangeStats struct {
	Count           int64
	LatestCreatedAt string
	Clients         string
}

// MonthStats aggregates the records whose date falls in [from, to].
//
// created_at is stored as fixed-width UTC text, so MAX() orders it correctly.
func MonthStats(ctx context.Context, db *gorm.DB, from, to time.Time) (RangeStats, error) {
	var out RangeStats
	err := db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS count,
			COALESCE(MAX(b.created_at), '') AS latest_created_at,
			COALESCE(GROUP_CONCAT(
				COALESCE(c.id, '') || ':' || COALESCE(c.first_name, '') || ':' ||
				COALESCE(c.last_name, '') || ':' || COALESCE(c.phone, ''), '|'), '') AS clients
		FROM bookings b
		LEFT JOIN clients c ON c.id = b.client_id
		WHERE b.date BETWEEN ? AND ?`,
		domain.DateKey(from), domain.DateKey(to),
	).Scan(&out).Error
	return out, err
}
