package request

import (
	"time"

	"shootbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	QuoteID           *uuid.UUID `json:"quote_id,omitempty"`
	ProviderID        uuid.UUID  `json:"provider_id" binding:"required"`
	TotalCents        int64      `json:"total_cents" binding:"required,gt=0"`
	DepositPercentage *float64   `json:"deposit_percentage,omitempty" binding:"omitempty,min=0,max=100"`
	ServiceDate       time.Time  `json:"service_date" binding:"required"`
	PolicyID          *uuid.UUID `json:"policy_id,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationRequest {
	return commands.CreateReservationRequest{
		QuoteID:           r.QuoteID,
		ProviderID:        r.ProviderID,
		TotalCents:        r.TotalCents,
		DepositPercentage: r.DepositPercentage,
		ServiceDate:       r.ServiceDate.UTC(),
		PolicyID:          r.PolicyID,
	}
}

// CancelReservationRequest may be sent without a body.
type CancelReservationRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}
