package payment

import "fmt"

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusIntentCreated PaymentStatus = "intent_created"
	PaymentStatusCaptured      PaymentStatus = "captured"
	PaymentStatusDepositPaid   PaymentStatus = "deposit_paid"
	PaymentStatusSettled       PaymentStatus = "settled"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusCancelled     PaymentStatus = "cancelled"
)

func (s PaymentStatus) String() string { return string(s) }

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusIntentCreated, PaymentStatusCaptured,
		PaymentStatusDepositPaid, PaymentStatusSettled, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	default:
		return false
	}
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSettled || s == PaymentStatusRefunded || s == PaymentStatusCancelled
}

// HoldsFunds reports whether the client's money has been captured and not yet
// returned or fully paid out.
func (s PaymentStatus) HoldsFunds() bool {
	return s == PaymentStatusCaptured || s == PaymentStatusDepositPaid
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: payment status %q", ErrInvalidStatus, s)
	}
	return st, nil
}

type ServiceStatus string

const (
	ServiceStatusPending   ServiceStatus = "pending"
	ServiceStatusConfirmed ServiceStatus = "confirmed"
	ServiceStatusFinished  ServiceStatus = "finished"
	ServiceStatusCancelled ServiceStatus = "cancelled"
)

func (s ServiceStatus) String() string { return string(s) }

func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServiceStatusPending, ServiceStatusConfirmed, ServiceStatusFinished, ServiceStatusCancelled:
		return true
	default:
		return false
	}
}

func ParseServiceStatus(s string) (ServiceStatus, error) {
	st := ServiceStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: service status %q", ErrInvalidStatus, s)
	}
	return st, nil
}

type TransactionType string

const (
	TransactionTypeDepositTransfer TransactionType = "deposit_transfer"
	TransactionTypeBalanceTransfer TransactionType = "balance_transfer"
	TransactionTypeRefund          TransactionType = "refund"
)

func (t TransactionType) String() string { return string(t) }

func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TransactionTypeDepositTransfer, TransactionTypeBalanceTransfer, TransactionTypeRefund:
		return t, nil
	default:
		return "", fmt.Errorf("%w: transaction type %q", ErrInvalidStatus, s)
	}
}

type TransactionStatus string

const TransactionStatusSucceeded TransactionStatus = "succeeded"

type CancelledBy string

const (
	CancelledByClient   CancelledBy = "client"
	CancelledByProvider CancelledBy = "provider"
)

func (c CancelledBy) String() string { return string(c) }

func ParseCancelledBy(s string) (CancelledBy, error) {
	switch c := CancelledBy(s); c {
	case CancelledByClient, CancelledByProvider:
		return c, nil
	default:
		return "", fmt.Errorf("%w: cancelled_by %q", ErrInvalidCancellation, s)
	}
}
