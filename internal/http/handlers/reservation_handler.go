// Reservation HTTP handlers.
//
//   - GET    /reservations/{date}   (details of a reserved day)
//   - PUT    /reservations/{date}   (create or edit; same upsert)
//   - DELETE /reservations/{date}   (idempotent)
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kumbayah/booking-calendar/internal/domain"
	"github.com/kumbayah/booking-calendar/internal/services"
)

// AmountText is the amount exactly as typed. It accepts a JSON string or a
// bare number so that "abc" reaches validation and is reported as
// amount_invalid instead of a decoding error.
type AmountText string

// UnmarshalJSON implements json.Unmarshaler.
func (a *AmountText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = AmountText(s)
		return nil
	}
	*a = AmountText(b)
	return nil
}

// ReservationRequest is the JSON payload of the reservation form.
type ReservationRequest struct {
	FirstName     string     `json:"first_name" binding:"max=100" example:"Ana"`
	LastName      string     `json:"last_name" binding:"max=100" example:"Lopez"`
	Phone         string     `json:"phone" binding:"max=32" example:"04121234567"`
	Amount        AmountText `json:"amount" swaggertype:"string" example:"100"`
	PaymentStatus string     `json:"payment_status" enums:"Completo,Mitad,Nada" example:"Completo"`
	PaymentMethod string     `json:"payment_method" enums:"PagoMovil,Efectivo,Transferencia" example:"Efectivo"`
	Reference     string     `json:"reference" binding:"max=64" example:""`
}

// GetReservation godoc
// @ID          getReservation
// @Summary     Reservation details
// @Tags        Reservations
// @Produce     json
// @Param       date  path  string  true  "ISO date"  example(2026-01-01)
// @Success     200  {object}  domain.Reservation
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Failure     404  {object}  handlers.ErrorResponse  "Available or blocked day"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reservations/{date} [get]
func (h *Handlers) GetReservation(c *gin.Context) {
	date, valid := dateParam(c)
	if !valid {
		return
	}
	res, err := h.svc.Reservation(c.Request.Context(), date)
	if err != nil {
		failWith(c, err)
		return
	}
	ok(c, http.StatusOK, res)
}

// PutReservation godoc
// @ID          putReservation
// @Summary     Create or edit the reservation on a date
// @Description Validates the form, resolves the client by phone (renaming it when the phone is known) and replaces whatever the date held. Nothing is written when validation fails. Returns the refreshed day cell.
// @Tags        Reservations
// @Accept      json
// @Produce     json
// @Param       date  path  string  true  "ISO date"  example(2026-01-01)
// @Param       body  body  handlers.ReservationRequest  true  "Reservation form"
// @Success     200  {object}  domain.DayCell
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date or JSON body"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reservations/{date} [put]
func (h *Handlers) PutReservation(c *gin.Context) {
	date, valid := dateParam(c)
	if !valid {
		return
	}
	var req ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	ctx := c.Request.Context()
	_, err := h.svc.AddOrUpdateReservation(ctx, date,
		services.ClientInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		},
		services.ReservationInput{
			Amount:        string(req.Amount),
			PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
			PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
			Reference:     req.Reference,
		},
	)
	if err != nil {
		failWith(c, err)
		return
	}

	cell, err := h.svc.DayStatus(ctx, h.cursor(), date)
	if err != nil {
		failWith(c, err)
		return
	}
	ok(c, http.StatusOK, cell)
}

// DeleteReservation godoc
// @ID          deleteReservation
// @Summary     Delete the reservation on a date
// @Description Clears the date whatever it holds. Deleting an available day is a no-op.
// @Tags        Reservations
// @Param       date  path  string  true  "ISO date"  example(2026-01-01)
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid date"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reservations/{date} [delete]
func (h *Handlers) DeleteReservation(c *gin.Context) {
	date, valid := dateParam(c)
	if !valid {
		return
	}
	if err := h.svc.DeleteReservation(c.Request.Context(), date); err != nil {
		failWith(c, err)
		return
	}
	noContent(c)
}
