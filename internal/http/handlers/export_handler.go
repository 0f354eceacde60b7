// ICS export handler.
//
//   - GET /export.ics?from=YYYY-MM-DD&to=YYYY-MM-DD&blocked=1
package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kumbayah/booking-calendar/internal/domain"
	"github.com/kumbayah/booking-calendar/internal/http/middleware"
	"github.com/kumbayah/booking-calendar/internal/ics"
	"github.com/kumbayah/booking-calendar/internal/services"
	"github.com/kumbayah/booking-calendar/internal/sysutil"
)

// maxExportDays bounds one export to roughly five years.
const maxExportDays = 5*366 + 1

// ExportICS godoc
// @ID          exportICS
// @Summary     Export reservations as iCalendar
// @Description All-day events for the reserved days in [from, to]. Both bounds default to the shown month. Blocked days are included as transparent events when blocked is truthy.
// @Tags        Export
// @Produce     text/calendar
// @Param       from     query  string  false  "First ISO date (inclusive)"  example(2026-01-01)
// @Param       to       query  string  false  "Last ISO date (inclusive)"   example(2026-12-31)
// @Param       blocked  query  bool    false  "Include blocked days"
// @Param       name     query  string  false  "Calendar display name"
// @Success     200  {string}  string  "text/calendar body"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date or range"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /export.ics [get]
func (h *Handlers) ExportICS(c *gin.Context) {
	cur := h.cursor()
	from, to := cur.First(), cur.Last()

	if s := strings.TrimSpace(c.Query("from")); s != "" {
		d, err := services.ParseDay(s)
		if err != nil {
			failWith(c, err)
			return
		}
		from = d
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		d, err := services.ParseDay(s)
		if err != nil {
			failWith(c, err)
			return
		}
		to = d
	}
	if to.Sub(from) > maxExportDays*24*time.Hour {
		fail(c, http.StatusBadRequest, ErrCodeInvalidDate, "export range is limited to five years")
		return
	}

	days, err := h.svc.DaysInRange(c.Request.Context(), from, to)
	if err != nil {
		failWith(c, err)
		return
	}

	filename := fmt.Sprintf("kumbayah-%s-%s.ics", domain.DateKey(from), domain.DateKey(to))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Status(http.StatusOK)

	err = ics.Write(c.Writer, days, ics.Options{
		IncludeBlocked: sysutil.IsTruthy(c.Query("blocked")),
		Name:           sysutil.FirstNonEmpty(c.Query("name"), h.ExportName),
	})
	if err != nil {
		// Headers are gone; the client sees a truncated file.
		_ = c.Error(err)
		middleware.LoggerFrom(c).Error().Err(err).Str("file", filename).Msg("ics export interrupted")
	}
}
