package api

import (
	"context"
	"net/http"

	"shootbook/internal/domain/user"
	reqdto "shootbook/internal/handler/dto/request"
	resdto "shootbook/internal/handler/dto/response"
	"shootbook/internal/handler/httperr"
	"shootbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stepFunc func(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*commands.PaymentStepResult, error)

type PaymentHandler struct {
	cmds commands.PaymentCommands
}

func NewPaymentHandler(cmds commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// @Summary Create booking payment
// @Description Create the payment intent for the full reservation amount
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CreatePaymentRequest true "Payment request"
// @Success 201 {object} resdto.PaymentStepResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /reservations/{id}/payment [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateBookingPayment(c.Request.Context(), req.ToCommand(id), actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromPaymentStep(result))
}

// @Summary Confirm payment
// @Description Capture the intent and transfer the deposit to the provider
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ConfirmPaymentRequest true "Confirm request"
// @Success 200 {object} resdto.PaymentStepResponse
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /reservations/{id}/payment/confirm [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req reqdto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.ConfirmPayment(c.Request.Context(), req.ToCommand(id), actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentStep(result))
}

// @Summary Retry deposit transfer
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.PaymentStepResponse
// @Router /reservations/{id}/transfers/deposit [post]
func (h *PaymentHandler) TransferDeposit(c *gin.Context) {
	h.step(c, h.cmds.TransferDeposit)
}

// @Summary Transfer balance
// @Description Pay the remaining balance to the provider once the service is finished
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.PaymentStepResponse
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/transfers/balance [post]
func (h *PaymentHandler) TransferBalance(c *gin.Context) {
	h.step(c, h.cmds.TransferBalance)
}

// @Summary Complete service
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.PaymentStepResponse
// @Router /reservations/{id}/complete [post]
func (h *PaymentHandler) CompleteService(c *gin.Context) {
	h.step(c, h.cmds.CompleteService)
}

func (h *PaymentHandler) step(c *gin.Context, run stepFunc) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := run(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithMappedError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPaymentStep(result))
}
