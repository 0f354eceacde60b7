// Package calendar holds the pure date arithmetic behind the month view:
// the month/year cursor and the Monday-first grid layout. Nothing here
// touches storage; services.CalendarService composes it with the ledger.
package calendar

import (
	"fmt"
	"time"
)

// Cursor is the month currently shown. It is a value: navigation returns a
// new Cursor instead of mutating the receiver.
type Cursor struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// At returns the cursor for the month containing t, in t's location.
func At(t time.Time) Cursor {
	return Cursor{Month: t.Month(), Year: t.Year()}
}

// NewCursor validates month (1-12). Years are unbounded.
func NewCursor(year, month int) (Cursor, error) {
	if month < 1 || month > 12 {
		return Cursor{}, fmt.Errorf("month %d out of range 1-12", month)
	}
	return Cursor{Month: time.Month(month), Year: year}, nil
}

// Next moves one month forward, rolling December into January of year+1.
func (c Cursor) Next() Cursor {
	if c.Month == time.December {
		return Cursor{Month: time.January, Year: c.Year + 1}
	}
	return Cursor{Month: c.Month + 1, Year: c.Year}
}

// Prev moves one month back, rolling January into December of year-1.
func (c Cursor) Prev() Cursor {
	if c.Month == time.January {
		return Cursor{Month: time.December, Year: c.Year - 1}
	}
	return Cursor{Month: c.Month - 1, Year: c.Year}
}

// First is the first day of the cursor's month (midnight UTC).
func (c Cursor) First() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last is the last day of the cursor's month (midnight UTC).
func (c Cursor) Last() time.Time {
	return c.First().AddDate(0, 1, -1)
}

// Contains reports whether date falls inside the cursor's month.
func (c Cursor) Contains(date time.Time) bool {
	return date.Month() == c.Month && date.Year() == c.Year
}

func (c Cursor) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}
