package request

import (
	"strings"

	"shootbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatePaymentRequest struct {
	ProviderID        uuid.UUID `json:"provider_id" binding:"required"`
	TotalCents        int64     `json:"total_cents" binding:"omitempty,gt=0"`
	DepositPercentage *float64  `json:"deposit_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	PayerEmail        string    `json:"payer_email" binding:"omitempty,email"`
}

func (r CreatePaymentRequest) ToCommand(reservationID uuid.UUID) commands.CreateBookingPaymentRequest {
	return commands.CreateBookingPaymentRequest{
		ReservationID:     reservationID,
		ProviderID:        r.ProviderID,
		TotalCents:        r.TotalCents,
		DepositPercentage: r.DepositPercentage,
		PayerEmail:        strings.TrimSpace(r.PayerEmail),
	}
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

func (r ConfirmPaymentRequest) ToCommand(reservationID uuid.UUID) commands.ConfirmPaymentRequest {
	return commands.ConfirmPaymentRequest{
		ReservationID: reservationID,
		IntentID:      strings.TrimSpace(r.PaymentIntentID),
	}
}
