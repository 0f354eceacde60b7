// Package domain defines the persistence models for clients and day records
// together with the value types the calendar engine hands to presentation.
// The GORM models map onto the two-table schema shared with older releases
// of the application (clients + bookings).
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Client is a person who has booked at least one day.
//
// Fields:
//   - ID: autoincrement integer primary key, stable for the client's lifetime.
//   - FirstName / LastName: newest names seen for this phone.
//   - Phone: optional; NULL when empty so the unique index only constrains
//     non-empty values (at most one client per phone).
type Client struct {
	ID        uint    `json:"id"         gorm:"primaryKey;autoIncrement"`
	FirstName string  `json:"first_name" gorm:"column:first_name;type:TEXT"`
	LastName  string  `json:"last_name"  gorm:"column:last_name;type:TEXT"`
	Phone     *string `json:"phone"      gorm:"column:phone;type:TEXT;uniqueIndex:ux_clients_phone"`
}

// TableName returns the database table name for Client.
func (Client) TableName() string { return "clients" }

// PhoneValue returns the stored phone or "" when none was given.
func (c Client) PhoneValue() string {
	if c.Phone == nil {
		return ""
	}
	return *c.Phone
}

// PhonePtr converts a phone string to its column value: nil for blank input.
func PhonePtr(phone string) *string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	return &phone
}

// Booking is the persisted Day Record. One row per calendar date at most.
//
// A row with a NULL ClientID marks the day as blocked; a row with a client
// is a reservation. Absence of a row means the day is available. Callers
// should not interpret rows directly: the repository converts them into a
// DayState.
//
// CreatedAt is kept as ISO 8601 text so rows written by earlier releases
// (naive UTC timestamps) stay readable.
type Booking struct {
	Date          string          `gorm:"column:date;type:TEXT;primaryKey"`
	ClientID      *uint           `gorm:"column:client_id;index"`
	Amount        decimal.Decimal `gorm:"column:amount;type:REAL"`
	PaymentStatus string          `gorm:"column:payment_status;type:TEXT"`
	PaymentMethod string          `gorm:"column:payment_method;type:TEXT"`
	Reference     string          `gorm:"column:reference;type:TEXT"`
	CreatedAt     string          `gorm:"column:created_at;type:TEXT"`

	Client *Client `gorm:"foreignKey:ClientID;references:ID"`
}

// TableName returns the database table name for Booking.
func (Booking) TableName() string { return "bookings" }
