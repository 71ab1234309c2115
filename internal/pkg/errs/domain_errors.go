package errs

import "errors"

// Categories surfaced by the payment usecases. Causes are attached with Mark so
// callers can match either the category or the underlying error.
var (
	// Gateway errors
	ErrGateway                = errors.New("payment gateway error")
	ErrPaymentNotCaptured     = errors.New("payment not captured")
	ErrDepositTransferPending = errors.New("payment captured but deposit transfer failed")

	// Provider errors
	ErrMissingPayoutAccount = errors.New("provider has no payout account")

	// Reservation errors
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrInvalidTransition      = errors.New("invalid payment status transition")
	ErrServiceNotCompleted    = errors.New("service not completed")
	ErrIntentMismatch         = errors.New("payment intent does not belong to reservation")
	ErrConcurrentModification = errors.New("reservation modified concurrently")
	ErrOperationInProgress    = errors.New("another payment operation is in progress")

	// Cancellation errors
	ErrPolicyRefusal             = errors.New("cancellation refused by policy")
	ErrInsufficientJustification = errors.New("insufficient cancellation justification")
	ErrPolicyNotFound            = errors.New("cancellation policy not found")

	// Access errors
	ErrForbidden = errors.New("forbidden")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")
	ErrDuplicateRequest       = errors.New("idempotency key reused with different request")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
