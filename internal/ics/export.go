// Package ics renders calendar days as an iCalendar (RFC 5545) feed so the
// bookings can be subscribed to from a phone or desktop calendar.
//
// Every reserved day becomes an all-day VEVENT; blocked days are optional and
// exported as transparent "No disponible" events. Event UIDs are derived from
// the date, so re-importing a newer export updates events instead of
// duplicating them.
package ics

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

const (
	// ProductID identifies this application in PRODID.
	ProductID = "-//Kumbayah//Booking Calendar//ES"

	uidDomain      = "kumbayah.local"
	blockedSummary = "No disponible"
)

// uidSpace namespaces the SHA-1 event UIDs.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte(uidDomain))

// Options controls what Build emits.
type Options struct {
	// IncludeBlocked adds blocked days as transparent events.
	IncludeBlocked bool
	// Name is the calendar display name (X-WR-CALNAME); empty omits it.
	Name string
	// Stamp is DTSTAMP for every event; zero means time.Now.
	Stamp time.Time
}

// EventUID is the stable UID for the event on date.
func EventUID(date time.Time) string {
	return uuid.NewSHA1(uidSpace, []byte(domain.DateKey(date))).String() + "@" + uidDomain
}

// Build converts days into a calendar. Available days never appear.
func Build(days []domain.DayEntry, opts Options) *ical.Calendar {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	p := message.NewPrinter(language.Spanish)

	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)
	if opts.Name != "" {
		cal.SetName(opts.Name)
		cal.SetXWRCalName(opts.Name)
	}

	for _, d := range days {
		switch d.State.Kind {
		case domain.DayReserved:
			if d.State.Reservation == nil {
				continue
			}
			ev := newEvent(cal, d.Date, stamp)
			r := d.State.Reservation
			ev.SetSummary(r.DisplayName())
			ev.SetDescription(describe(p, r))
			ev.SetStatus(statusFor(r.PaymentStatus))
			ev.AddCategory(string(r.PaymentStatus))
		case domain.DayBlocked:
			if !opts.IncludeBlocked {
				continue
			}
			ev := newEvent(cal, d.Date, stamp)
			ev.SetSummary(blockedSummary)
			ev.SetTimeTransparency(ical.TransparencyTransparent)
		}
	}
	return cal
}

// Write builds the calendar and serializes it to w.
func Write(w io.Writer, days []domain.DayEntry, opts Options) error {
	return Build(days, opts).SerializeTo(w)
}

func newEvent(cal *ical.Calendar, date time.Time, stamp time.Time) *ical.VEvent {
	ev := cal.AddEvent(EventUID(date))
	ev.SetDtStampTime(stamp)
	ev.SetAllDayStartAt(date)
	ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
	return ev
}

// statusFor maps payment to event status: fully paid days are confirmed,
// anything else is tentative.
func statusFor(s domain.PaymentStatus) ical.ObjectStatus {
	if s == domain.PaymentComplete {
		return ical.ObjectStatusConfirmed
	}
	return ical.ObjectStatusTentative
}

func describe(p *message.Printer, r *domain.Reservation) string {
	amount, _ := r.Amount.Float64()
	lines := []string{
		p.Sprintf("Monto: %.2f", amount),
		"Pago: " + string(r.PaymentStatus),
		"Método: " + string(r.PaymentMethod),
	}
	if r.Reference != "" {
		lines = append(lines, "Referencia: "+r.Reference)
	}
	if r.Phone != "" {
		lines = append(lines, "Teléfono: "+r.Phone)
	}
	return strings.Join(lines, "\n")
}
