package repo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

const (
	legacyBookingsTable     = "bookings_old"
	legacyAvailabilityTable = "availability"
)

// legacyClientColumns marks a bookings table from before clients were split out.
var legacyClientColumns = []string{"first_name", "last_name", "phone"}

// AutoMigrate brings any database file, including ones written by older
// releases, to the current clients + bookings schema. It runs in a single
// transaction and is safe to call on every start-up.
//
// Order matters:
//  1. clients (legacy '' phones become NULL before the unique index exists)
//  2. bookings that still carry client columns are split into clients + bookings
//  3. bookings is created or upgraded and legacy NULL columns get zero values
//  4. a legacy availability table becomes blocked day records and is dropped
func AutoMigrate(db *gorm.DB) error {
	return AutoMigrateAt(db, time.Now())
}

// AutoMigrateAt is AutoMigrate with an explicit clock for rows that lack a
// created_at value.
func AutoMigrateAt(db *gorm.DB, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := migrateClients(tx); err != nil {
			return fmt.Errorf("migrate clients: %w", err)
		}
		if err := splitLegacyBookings(tx, now); err != nil {
			return fmt.Errorf("split legacy bookings: %w", err)
		}
		if err := migrateBookings(tx, now); err != nil {
			return fmt.Errorf("migrate bookings: %w", err)
		}
		if err := convertLegacyAvailability(tx, now); err != nil {
			return fmt.Errorf("convert availability: %w", err)
		}
		return nil
	})
}

func migrateClients(tx *gorm.DB) error {
	m := tx.Migrator()
	if m.HasTable(&domain.Client{}) && m.HasColumn(&domain.Client{}, "phone") {
		if err := tx.Exec("UPDATE clients SET phone = NULL WHERE TRIM(phone) = ''").Error; err != nil {
			return err
		}
	}
	return tx.AutoMigrate(&domain.Client{})
}

func hasLegacyClientColumns(tx *gorm.DB) bool {
	m := tx.Migrator()
	if !m.HasTable("bookings") {
		return false
	}
	for _, col := range legacyClientColumns {
		if m.HasColumn("bookings", col) {
			return true
		}
	}
	return false
}

func splitLegacyBookings(tx *gorm.DB, now time.Time) error {
	if !hasLegacyClientColumns(tx) {
		return nil
	}
	m := tx.Migrator()
	if err := m.RenameTable("bookings", legacyBookingsTable); err != nil {
		return err
	}
	if err := m.CreateTable(&domain.Booking{}); err != nil {
		return err
	}

	var rows []map[string]any
	if err := tx.Table(legacyBookingsTable).Find(&rows).Error; err != nil {
		return err
	}
	for _, row := range rows {
		date := asString(row["date"])
		if date == "" {
			continue
		}
		clientID, err := legacyClient(tx, asString(row["first_name"]), asString(row["last_name"]), asString(row["phone"]))
		if err != nil {
			return err
		}
		b := domain.Booking{
			Date:          date,
			ClientID:      &clientID,
			Amount:        asDecimal(row["amount"]),
			PaymentStatus: asString(row["payment_status"]),
			PaymentMethod: asString(row["payment_method"]),
			Reference:     asString(row["reference"]),
			CreatedAt:     normalizeTimestamp(asString(row["created_at"]), now),
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
	}
	return m.DropTable(legacyBookingsTable)
}

// legacyClient reuses the client holding phone, without touching its names,
// or inserts a new one. Rows without a phone always get a fresh client.
func legacyClient(tx *gorm.DB, firstName, lastName, phone string) (uint, error) {
	existing, err := FindClientByPhone(tx.Statement.Context, tx, phone)
	switch {
	case err == nil:
		return existing.ID, nil
	case !errors.Is(err, ErrNotFound):
		return 0, err
	}
	c := domain.Client{FirstName: firstName, LastName: lastName, Phone: domain.PhonePtr(phone)}
	if err := tx.Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func migrateBookings(tx *gorm.DB, now time.Time) error {
	if err := tx.AutoMigrate(&domain.Booking{}); err != nil {
		return err
	}
	// decimal.Decimal cannot scan NULL; older rows may carry NULLs in any column.
	return tx.Exec(`UPDATE bookings SET
		amount = COALESCE(amount, 0),
		payment_status = COALESCE(payment_status, ''),
		payment_method = COALESCE(payment_method, ''),
		reference = COALESCE(reference, ''),
		created_at = COALESCE(created_at, ?)
	WHERE amount IS NULL OR payment_status IS NULL OR payment_method IS NULL
		OR reference IS NULL OR created_at IS NULL`, domain.FormatTimestamp(now)).Error
}

func convertLegacyAvailability(tx *gorm.DB, now time.Time) error {
	m := tx.Migrator()
	if !m.HasTable(legacyAvailabilityTable) {
		return nil
	}
	var rows []map[string]any
	if err := tx.Table(legacyAvailabilityTable).Select("date", "available").Find(&rows).Error; err != nil {
		return err
	}
	created := domain.FormatTimestamp(now)
	for _, row := range rows {
		date := asString(row["date"])
		if date == "" || asInt(row["available"]) != 0 {
			continue
		}
		var n int64
		if err := tx.Model(&domain.Booking{}).Where("date = ?", date).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		b := domain.Booking{Date: date, CreatedAt: created}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
	}
	return m.DropTable(legacyAvailabilityTable)
}

// normalizeTimestamp rewrites a legacy created_at in the current layout, or
// stamps now when it is missing or unreadable.
func normalizeTimestamp(s string, now time.Time) string {
	if t := domain.ParseTimestamp(s); !t.IsZero() {
		return domain.FormatTimestamp(t)
	}
	return domain.FormatTimestamp(now)
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func asInt(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string, []byte:
		n, err := strconv.ParseInt(strings.TrimSpace(asString(x)), 10, 64)
		if err != nil {
			return 1
		}
		return n
	}
	return 1
}

func asDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case int64:
		return decimal.NewFromInt(x)
	case string, []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(asString(x)))
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}
