package response

import (
	"time"

	"shootbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID                   uuid.UUID             `json:"id"`
	ClientID             uuid.UUID             `json:"clientId"`
	ProviderID           uuid.UUID             `json:"providerId"`
	QuoteID              *uuid.UUID            `json:"quoteId,omitempty"`
	TotalCents           int64                 `json:"totalCents"`
	DepositCents         int64                 `json:"depositCents"`
	BalanceCents         int64                 `json:"balanceCents"`
	DepositPercentage    float64               `json:"depositPercentage"`
	ServiceDate          time.Time             `json:"serviceDate"`
	PaymentStatus        string                `json:"paymentStatus"`
	ServiceStatus        string                `json:"serviceStatus"`
	PaymentIntentID      *string               `json:"paymentIntentId,omitempty"`
	DepositTransferID    *string               `json:"depositTransferId,omitempty"`
	BalanceTransferID    *string               `json:"balanceTransferId,omitempty"`
	RefundID             *string               `json:"refundId,omitempty"`
	CancellationPolicyID *uuid.UUID            `json:"cancellationPolicyId,omitempty"`
	Cancellation         *CancellationResponse `json:"cancellation,omitempty"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

type CancellationResponse struct {
	CancelledAt      time.Time  `json:"cancelledAt"`
	CancelledBy      string     `json:"cancelledBy"`
	Reason           *string    `json:"reason,omitempty"`
	PolicyID         *uuid.UUID `json:"policyId,omitempty"`
	RefundCents      int64      `json:"refundCents"`
	RefundPercentage float64    `json:"refundPercentage"`
	FeeCents         int64      `json:"feeCents"`
}

type TransactionResponse struct {
	ID            uuid.UUID      `json:"id"`
	ReservationID uuid.UUID      `json:"reservationId"`
	Type          string         `json:"type"`
	AmountCents   int64          `json:"amountCents"`
	ExternalID    string         `json:"externalId"`
	Status        string         `json:"status"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type CancellationPreviewResponse struct {
	ReservationID         uuid.UUID  `json:"reservationId"`
	CancelledBy           string     `json:"cancelledBy"`
	CanCancel             bool       `json:"canCancel"`
	RequiresJustification bool       `json:"requiresJustification"`
	Reason                string     `json:"reason"`
	HoursRemaining        float64    `json:"hoursRemaining"`
	RefundPercentage      float64    `json:"refundPercentage"`
	GrossRefundCents      int64      `json:"grossRefundCents"`
	FeeCents              int64      `json:"feeCents"`
	RefundCents           int64      `json:"refundCents"`
	PolicyID              *uuid.UUID `json:"policyId,omitempty"`
	PolicyType            string     `json:"policyType"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{
		ID:                   v.ID,
		ClientID:             v.ClientID,
		ProviderID:           v.ProviderID,
		QuoteID:              v.QuoteID,
		TotalCents:           v.TotalCents,
		DepositCents:         v.DepositCents,
		BalanceCents:         v.BalanceCents,
		DepositPercentage:    v.DepositPercentage,
		ServiceDate:          v.ServiceDate,
		PaymentStatus:        v.PaymentStatus,
		ServiceStatus:        v.ServiceStatus,
		PaymentIntentID:      v.PaymentIntentID,
		DepositTransferID:    v.DepositTransferID,
		BalanceTransferID:    v.BalanceTransferID,
		RefundID:             v.RefundID,
		CancellationPolicyID: v.CancellationPolicyID,
		CreatedAt:            v.CreatedAt,
		UpdatedAt:            v.UpdatedAt,
	}
	if c := v.Cancellation; c != nil {
		resp.Cancellation = &CancellationResponse{
			CancelledAt:      c.CancelledAt,
			CancelledBy:      c.CancelledBy,
			Reason:           c.Reason,
			PolicyID:         c.PolicyID,
			RefundCents:      c.RefundCents,
			RefundPercentage: c.RefundPercentage,
			FeeCents:         c.FeeCents,
		}
	}
	return resp
}

func FromTransactionViews(views []*queries.TransactionView) []*TransactionResponse {
	res := make([]*TransactionResponse, len(views))
	for i, v := range views {
		res[i] = &TransactionResponse{
			ID:            v.ID,
			ReservationID: v.ReservationID,
			Type:          v.Type,
			AmountCents:   v.AmountCents,
			ExternalID:    v.ExternalID,
			Status:        v.Status,
			Metadata:      v.Metadata,
			CreatedAt:     v.CreatedAt,
		}
	}
	return res
}

func FromCancellationPreview(p *queries.CancellationPreview) *CancellationPreviewResponse {
	return &CancellationPreviewResponse{
		ReservationID:         p.ReservationID,
		CancelledBy:           p.CancelledBy,
		CanCancel:             p.CanCancel,
		RequiresJustification: p.RequiresJustification,
		Reason:                p.Reason,
		HoursRemaining:        p.HoursRemaining,
		RefundPercentage:      p.RefundPercentage,
		GrossRefundCents:      p.GrossRefundCents,
		FeeCents:              p.FeeCents,
		RefundCents:           p.RefundCents,
		PolicyID:              p.PolicyID,
		PolicyType:            p.PolicyType,
	}
}
