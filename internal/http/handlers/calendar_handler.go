// Calendar HTTP handlers.
//
// This file exposes the month view and day-level endpoints:
//   - GET  /calendar                  (grid at the shown month, ETag support)
//   - POST /calendar/prev|next        (move the shown month)
//   - GET  /calendar/{year}/{month}   (grid for an explicit month)
//   - GET  /days/{date}               (single cell)
//   - POST /days/{date}/toggle        (available <-> blocked)
//
// The "shown month" is one process-wide cursor, the HTTP counterpart of the
// month a desktop window is displaying. Handlers read and replace it under a
// mutex; the service itself is stateless.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kumbayah/booking-calendar/internal/calendar"
	"github.com/kumbayah/booking-calendar/internal/domain"
	"github.com/kumbayah/booking-calendar/internal/services"
)

//
// Service contract (context-aware)
//

// CalendarService is the calendar engine consumed by the handlers.
// *services.CalendarService implements it.
type CalendarService interface {
	CurrentCursor() calendar.Cursor
	PreviousMonth(cur calendar.Cursor) calendar.Cursor
	NextMonth(cur calendar.Cursor) calendar.Cursor
	MonthGrid(ctx context.Context, cur calendar.Cursor) ([][]domain.DayCell, error)
	MonthVersion(ctx context.Context, cur calendar.Cursor) (string, error)
	DayStatus(ctx context.Context, cur calendar.Cursor, date time.Time) (domain.DayCell, error)
	ToggleDayAvailability(ctx context.Context, cur calendar.Cursor, date time.Time) (domain.DayCell, error)
	AddOrUpdateReservation(ctx context.Context, date time.Time, client services.ClientInput, in services.ReservationInput) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, date time.Time) error
	Reservation(ctx context.Context, date time.Time) (*domain.Reservation, error)
	DaysInRange(ctx context.Context, from, to time.Time) ([]domain.DayEntry, error)
	Client(ctx context.Context, id uint) (*domain.Client, error)
}

//
// Handler wiring
//

// Handlers groups the calendar, reservation and export endpoints.
type Handlers struct {
	svc CalendarService

	mu  sync.Mutex
	cur calendar.Cursor

	// ExportName is the X-WR-CALNAME of ICS exports.
	ExportName string
}

// New constructs Handlers with the shown month set to the current month.
func New(svc CalendarService) *Handlers {
	return &Handlers{svc: svc, cur: svc.CurrentCursor(), ExportName: "Kumbayah"}
}

// cursor returns the shown month.
func (h *Handlers) cursor() calendar.Cursor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cur
}

// move replaces the shown month with step(cur) and returns the new value.
func (h *Handlers) move(step func(calendar.Cursor) calendar.Cursor) calendar.Cursor {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur = step(h.cur)
	return h.cur
}

//
// DTOs
//

// weekdayLabels head the Monday-first grid columns.
var weekdayLabels = []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

// MonthResponse is one rendered month.
type MonthResponse struct {
	Year     int                `json:"year" example:"2026"`
	Month    int                `json:"month" example:"1"`
	Title    string             `json:"title" example:"January 2026"`
	Weekdays []string           `json:"weekdays"`
	Weeks    [][]domain.DayCell `json:"weeks"`
}

func newMonthResponse(cur calendar.Cursor, weeks [][]domain.DayCell) MonthResponse {
	return MonthResponse{
		Year:     cur.Year,
		Month:    int(cur.Month),
		Title:    fmt.Sprintf("%s %d", cur.Month, cur.Year),
		Weekdays: weekdayLabels,
		Weeks:    weeks,
	}
}

//
// Helpers
//

// dateParam parses the :date path parameter, failing the request when it is
// not an ISO date.
func dateParam(c *gin.Context) (time.Time, bool) {
	d, err := services.ParseDay(c.Param("date"))
	if err != nil {
		failWith(c, err)
		return time.Time{}, false
	}
	return d, true
}

// renderMonth writes the grid for cur. With conditional set, it emits a weak
// ETag derived from the month's content and answers 304 when it matches.
func (h *Handlers) renderMonth(c *gin.Context, cur calendar.Cursor, conditional bool) {
	ctx := c.Request.Context()

	if conditional {
		if version, err := h.svc.MonthVersion(ctx, cur); err == nil {
			etag := `W/"` + version + `"`
			c.Header("ETag", etag)
			c.Header("Cache-Control", "private, no-cache")
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	weeks, err := h.svc.MonthGrid(ctx, cur)
	if err != nil {
		failWith(c, err)
		return
	}
	ok(c, http.StatusOK, newMonthResponse(cur, weeks))
}

//
// Handlers
//

// GetCalendar godoc
// @ID          getCalendar
// @Summary     Month grid at the shown month
// @Description Monday-first weeks covering the shown month, padded with days of the adjacent months. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Calendar
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"calendar:2026-01:3:1a2b3c4d\")
//
// @Success     200  {object}  handlers.MonthResponse
// @Header      200  {string}  ETag  "Weak ETag for the month"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /calendar [get]
func (h *Handlers) GetCalendar(c *gin.Context) {
	h.renderMonth(c, h.cursor(), true)
}

// PrevMonth godoc
// @ID          prevMonth
// @Summary     Show the previous month
// @Tags        Calendar
// @Produce     json
// @Success     200  {object}  handlers.MonthResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /calendar/prev [post]
func (h *Handlers) PrevMonth(c *gin.Context) {
	h.renderMonth(c, h.move(h.svc.PreviousMonth), false)
}

// NextMonth godoc
// @ID          nextMonth
// @Summary     Show the next month
// @Tags        Calendar
// @Produce     json
// @Success     200  {object}  handlers.MonthResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /calendar/next [post]
func (h *Handlers) NextMonth(c *gin.Context) {
	h.renderMonth(c, h.move(h.svc.NextMonth), false)
}

// GetMonth godoc
// @ID          getMonth
// @Summary     Month grid for an explicit month
// @Description Stateless variant of GET /calendar; the shown month is not changed.
// @Tags        Calendar
// @Produce     json
//
// @Param       year   path  int  true  "Year"   example(2026)
// @Param       month  path  int  true  "Month"  minimum(1) maximum(12) example(1)
//
// @Success     200  {object}  handlers.MonthResponse
// @Success     304  {string}  string  "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /calendar/{year}/{month} [get]
func (h *Handlers) GetMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "month must be an integer")
		return
	}
	cur, err := calendar.NewCursor(year, month)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	h.renderMonth(c, cur, true)
}

// GetDay godoc
// @ID          getDay
// @Summary     Single day cell
// @Description Current state of one date; is_current_month is relative to the shown month.
// @Tags        Days
// @Produce     json
// @Param       date  path  string  true  "ISO date"  example(2026-01-15)
// @Success     200  {object}  domain.DayCell
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /days/{date} [get]
func (h *Handlers) GetDay(c *gin.Context) {
	date, valid := dateParam(c)
	if !valid {
		return
	}
	cell, err := h.svc.DayStatus(c.Request.Context(), h.cursor(), date)
	if err != nil {
		failWith(c, err)
		return
	}
	ok(c, http.StatusOK, cell)
}

// ToggleDay godoc
// @ID          toggleDay
// @Summary     Toggle a day between available and blocked
// @Description Only dates of the shown month can be toggled; reserved days are refused.
// @Tags        Days
// @Produce     json
// @Param       date  path  string  true  "ISO date"  example(2026-01-15)
// @Success     200  {object}  domain.DayCell
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Failure     409  {object}  handlers.ErrorResponse  "Reserved day or date outside the shown month"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /days/{date}/toggle [post]
func (h *Handlers) ToggleDay(c *gin.Context) {
	date, valid := dateParam(c)
	if !valid {
		return
	}
	cell, err := h.svc.ToggleDayAvailability(c.Request.Context(), h.cursor(), date)
	if err != nil {
		failWith(c, err)
		return
	}
	ok(c, http.StatusOK, cell)
}
