package shared

import "context"

// PaymentGateway is the remote charge, transfer and refund capability.
// Every call carries an idempotency key so that a retried request is not
// executed twice by the processor.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req CreateIntentRequest) (string, error)
	ConfirmPaymentIntent(ctx context.Context, intentID, idempotencyKey string) (ConfirmResult, error)
	CancelPaymentIntent(ctx context.Context, intentID, idempotencyKey string) error
	CreateTransfer(ctx context.Context, req TransferRequest) (string, error)
	CreateRefund(ctx context.Context, req RefundRequest) (string, error)
}

type CreateIntentRequest struct {
	AmountCents    int64
	Currency       string
	ReceiptEmail   string
	Metadata       map[string]string
	IdempotencyKey string
}

const IntentStatusSucceeded = "succeeded"

type ConfirmResult struct {
	Status        string
	CapturedCents int64
}

func (r ConfirmResult) Succeeded(expectedCents int64) bool {
	return r.Status == IntentStatusSucceeded && r.CapturedCents == expectedCents
}

type TransferRequest struct {
	DestinationAccountID string
	AmountCents          int64
	Currency             string
	SourceIntentID       string
	Metadata             map[string]string
	IdempotencyKey       string
}

type RefundRequest struct {
	IntentID       string
	AmountCents    int64
	Reason         string
	Metadata       map[string]string
	IdempotencyKey string
}
