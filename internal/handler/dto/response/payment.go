package response

import (
	"shootbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentStepResponse struct {
	ReservationID     uuid.UUID `json:"reservationId"`
	PaymentStatus     string    `json:"paymentStatus"`
	ServiceStatus     string    `json:"serviceStatus"`
	PaymentIntentID   string    `json:"paymentIntentId,omitempty"`
	TotalCents        int64     `json:"totalCents"`
	DepositCents      int64     `json:"depositCents"`
	BalanceCents      int64     `json:"balanceCents"`
	DepositTransferID string    `json:"depositTransferId,omitempty"`
	BalanceTransferID string    `json:"balanceTransferId,omitempty"`
	Replayed          bool      `json:"replayed"`
}

type CancellationResultResponse struct {
	ReservationID    uuid.UUID  `json:"reservationId"`
	PaymentStatus    string     `json:"paymentStatus"`
	ServiceStatus    string     `json:"serviceStatus"`
	CancelledBy      string     `json:"cancelledBy"`
	RefundPercentage float64    `json:"refundPercentage"`
	RefundCents      int64      `json:"refundCents"`
	FeeCents         int64      `json:"feeCents"`
	RefundID         string     `json:"refundId,omitempty"`
	PolicyID         *uuid.UUID `json:"policyId,omitempty"`
	Reason           string     `json:"reason,omitempty"`
	AlreadyCancelled bool       `json:"alreadyCancelled"`
}

func FromPaymentStep(r *commands.PaymentStepResult) *PaymentStepResponse {
	return &PaymentStepResponse{
		ReservationID:     r.ReservationID,
		PaymentStatus:     r.PaymentStatus.String(),
		ServiceStatus:     r.ServiceStatus.String(),
		PaymentIntentID:   r.PaymentIntentID,
		TotalCents:        r.TotalCents,
		DepositCents:      r.DepositCents,
		BalanceCents:      r.BalanceCents,
		DepositTransferID: r.DepositTransferID,
		BalanceTransferID: r.BalanceTransferID,
		Replayed:          r.IsReplayed,
	}
}

func FromCancellationResult(r *commands.CancellationResult) *CancellationResultResponse {
	return &CancellationResultResponse{
		ReservationID:    r.ReservationID,
		PaymentStatus:    r.PaymentStatus.String(),
		ServiceStatus:    r.ServiceStatus.String(),
		CancelledBy:      r.CancelledBy.String(),
		RefundPercentage: r.RefundPercentage,
		RefundCents:      r.RefundCents,
		FeeCents:         r.FeeCents,
		RefundID:         r.RefundID,
		PolicyID:         r.PolicyID,
		Reason:           r.Decision.Reason,
		AlreadyCancelled: r.AlreadyCancelled,
	}
}
