// Client and form-vocabulary handlers.
//
//   - GET /clients/{id}   (client directory entry)
//   - GET /vocabulary     (choices and limits the reservation form offers)
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kumbayah/booking-calendar/internal/domain"
)

// VocabularyResponse lists the accepted form values in display order.
type VocabularyResponse struct {
	PaymentStatuses    []domain.PaymentStatus `json:"payment_statuses"`
	PaymentMethods     []domain.PaymentMethod `json:"payment_methods"`
	ReferenceMethods   []domain.PaymentMethod `json:"reference_methods"`
	MinReferenceLength int                    `json:"min_reference_length" example:"6"`
	Weekdays           []string               `json:"weekdays"`
}

// GetVocabulary godoc
// @ID          getVocabulary
// @Summary     Reservation form vocabulary
// @Description Payment statuses and methods in display order, the methods that need a reference, and the reference minimum length.
// @Tags        Reservations
// @Produce     json
// @Success     200  {object}  handlers.VocabularyResponse
// @Router      /vocabulary [get]
func (h *Handlers) GetVocabulary(c *gin.Context) {
	methods := domain.PaymentMethods()
	refs := make([]domain.PaymentMethod, 0, len(methods))
	for _, m := range methods {
		if m.RequiresReference() {
			refs = append(refs, m)
		}
	}
	ok(c, http.StatusOK, VocabularyResponse{
		PaymentStatuses:    domain.PaymentStatuses(),
		PaymentMethods:     methods,
		ReferenceMethods:   refs,
		MinReferenceLength: domain.MinReferenceLength,
		Weekdays:           weekdayLabels,
	})
}

// GetClient godoc
// @ID          getClient
// @Summary     Client directory entry
// @Tags        Clients
// @Produce     json
// @Param       id  path  int  true  "Client id"  minimum(1)
// @Success     200  {object}  domain.Client
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown client"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /clients/{id} [get]
func (h *Handlers) GetClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "id must be a positive integer")
		return
	}
	cl, err := h.svc.Client(c.Request.Context(), uint(id))
	if err != nil {
		failWith(c, err)
		return
	}
	ok(c, http.StatusOK, cl)
}
