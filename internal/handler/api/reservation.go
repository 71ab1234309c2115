package api

import (
	"errors"
	"io"
	"net/http"

	"shootbook/internal/domain/payment"
	"shootbook/internal/domain/user"
	reqdto "shootbook/internal/handler/dto/request"
	resdto "shootbook/internal/handler/dto/response"
	"shootbook/internal/handler/httperr"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/commands"
	"shootbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservations commands.ReservationCommands
	payments     commands.PaymentCommands
	q            queries.ReservationQueries
}

func NewReservationHandler(
	reservations commands.ReservationCommands,
	payments commands.PaymentCommands,
	q queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
		payments:     payments,
		q:            q,
	}
}

// @Summary Create reservation
// @Description Accept a quote and create the reservation with idempotency key
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		if errs.Is(err, errs.ErrIdempotencyKeyRequired) {
			httperr.AbortWithMappedError(c, err)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key format", nil)
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.reservations.CreateReservation(c.Request.Context(), req.ToCommand(), actor, idempotencyKey)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		c.Header("Idempotent-Replayed", "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get the payment view of a reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List transactions
// @Description Ledger entries of a reservation, oldest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.TransactionResponse
// @Router /reservations/{id}/transactions [get]
func (h *ReservationHandler) ListTransactions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	views, err := h.q.ListTransactions(c.Request.Context(), actor, id)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransactionViews(views))
}

// @Summary Preview cancellation
// @Description Refund a cancellation would produce now. Nothing is changed.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param cancelled_by query string false "client or provider (admins only)"
// @Success 200 {object} resdto.CancellationPreviewResponse
// @Router /reservations/{id}/cancellation [get]
func (h *ReservationHandler) PreviewCancellation(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	preview, err := h.q.PreviewCancellation(c.Request.Context(), actor, id, cancelledByFor(actor, c.Query("cancelled_by")))
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellationPreview(preview))
}

// @Summary Cancel reservation
// @Description Cancel and refund according to the effective policy. Providers always refund in full.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} resdto.CancellationResultResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.payments.HandleCancellation(c.Request.Context(), commands.CancellationRequest{
		ReservationID: id,
		CancelledBy:   cancelledByFor(actor, c.Query("cancelled_by")),
		Reason:        req.Reason,
	}, actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellationResult(result))
}

func (h *ReservationHandler) getIdempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errs.ErrIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "invalid idempotency key format")
	}

	return key, nil
}

// cancelledByFor derives the cancelling party from the caller's role. Only
// admins may pick the party explicitly.
func cancelledByFor(actor user.Actor, override string) payment.CancelledBy {
	switch actor.Role {
	case user.RoleProvider:
		return payment.CancelledByProvider
	case user.RoleAdmin:
		if override != "" {
			return payment.CancelledBy(override)
		}
	}
	return payment.CancelledByClient
}
