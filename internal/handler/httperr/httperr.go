package httperr

import (
	"net/http"

	"shootbook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code      string `json:"code,omitempty"`
		Message   string `json:"message"`
		RequestID string `json:"requestId,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, err, "", msg, detail)
}

func abort(c *gin.Context, status int, err error, code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// DepositPendingDetail tells the caller the card was charged even though the
// payout did not go through, and which category stopped it.
type DepositPendingDetail struct {
	PaymentStatus string `json:"paymentStatus"`
	Cause         string `json:"cause,omitempty"`
}

// Order matters: the first matching category wins. A pending deposit comes
// first because it wraps the category of the failed payout.
var mappings = []mapping{
	{errs.ErrDepositTransferPending, http.StatusBadGateway, "deposit_transfer_pending", "Payment captured, deposit transfer will be retried"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "idempotency_key_required", "Idempotency-Key header is required"},
	{errs.ErrForbidden, http.StatusForbidden, "forbidden", "Not allowed to act on this resource"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found", "Reservation not found"},
	{errs.ErrPolicyNotFound, http.StatusNotFound, "policy_not_found", "Cancellation policy not found"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition", "Reservation is not in a state that allows this operation"},
	{errs.ErrIntentMismatch, http.StatusConflict, "intent_mismatch", "Payment intent does not belong to this reservation"},
	{errs.ErrConcurrentModification, http.StatusConflict, "concurrent_modification", "Reservation was modified concurrently, retry"},
	{errs.ErrOperationInProgress, http.StatusConflict, "operation_in_progress", "Another operation on this reservation is in progress"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "idempotency_in_progress", "Request with this Idempotency-Key is being processed"},
	{errs.ErrDuplicateRequest, http.StatusConflict, "duplicate_request", "Idempotency-Key was used with a different request"},
	{errs.ErrPolicyRefusal, http.StatusUnprocessableEntity, "policy_refusal", "Cancellation is not allowed by the policy"},
	{errs.ErrInsufficientJustification, http.StatusUnprocessableEntity, "insufficient_justification", "A written justification is required"},
	{errs.ErrServiceNotCompleted, http.StatusUnprocessableEntity, "service_not_completed", "Service has not been completed"},
	{errs.ErrMissingPayoutAccount, http.StatusUnprocessableEntity, "missing_payout_account", "Provider has no payout account"},
	{errs.ErrPaymentNotCaptured, http.StatusUnprocessableEntity, "payment_not_captured", "Payment was not captured"},
	{errs.ErrDomainValidation, http.StatusUnprocessableEntity, "validation_failed", "Validation failed"},
	{errs.ErrGateway, http.StatusBadGateway, "gateway_error", "Payment provider request failed"},
}

// AbortWithMappedError answers with the status of err's category, 500 otherwise.
func AbortWithMappedError(c *gin.Context, err error) {
	for i, m := range mappings {
		if !errs.Is(err, m.target) {
			continue
		}
		var detail any
		if m.target == errs.ErrDepositTransferPending {
			detail = DepositPendingDetail{PaymentStatus: "captured", Cause: causeCode(err, mappings[i+1:])}
		}
		abort(c, m.status, err, m.code, m.message, detail)
		return
	}
	abort(c, http.StatusInternalServerError, err, "internal_error", "Internal server error", nil)
}

func causeCode(err error, rest []mapping) string {
	for _, m := range rest {
		if errs.Is(err, m.target) {
			return m.code
		}
	}
	return ""
}
