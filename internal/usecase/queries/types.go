package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                   uuid.UUID         `json:"id"`
	ClientID             uuid.UUID         `json:"client_id"`
	ProviderID           uuid.UUID         `json:"provider_id"`
	QuoteID              *uuid.UUID        `json:"quote_id,omitempty"`
	TotalCents           int64             `json:"total_cents"`
	DepositCents         int64             `json:"deposit_cents"`
	BalanceCents         int64             `json:"balance_cents"`
	DepositPercentage    float64           `json:"deposit_percentage"`
	ServiceDate          time.Time         `json:"service_date"`
	PaymentStatus        string            `json:"payment_status"`
	ServiceStatus        string            `json:"service_status"`
	PaymentIntentID      *string           `json:"payment_intent_id,omitempty"`
	DepositTransferID    *string           `json:"deposit_transfer_id,omitempty"`
	BalanceTransferID    *string           `json:"balance_transfer_id,omitempty"`
	RefundID             *string           `json:"refund_id,omitempty"`
	CancellationPolicyID *uuid.UUID        `json:"cancellation_policy_id,omitempty"`
	Cancellation         *CancellationView `json:"cancellation,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

type CancellationView struct {
	CancelledAt      time.Time  `json:"cancelled_at"`
	CancelledBy      string     `json:"cancelled_by"`
	Reason           *string    `json:"reason,omitempty"`
	PolicyID         *uuid.UUID `json:"policy_id,omitempty"`
	RefundCents      int64      `json:"refund_cents"`
	RefundPercentage float64    `json:"refund_percentage"`
	FeeCents         int64      `json:"fee_cents"`
}

type TransactionView struct {
	ID            uuid.UUID      `json:"id"`
	ReservationID uuid.UUID      `json:"reservation_id"`
	Type          string         `json:"type"`
	AmountCents   int64          `json:"amount_cents"`
	ExternalID    string         `json:"external_id"`
	Status        string         `json:"status"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type RefundRuleView struct {
	HoursBefore      float64 `json:"hours_before"`
	RefundPercentage float64 `json:"refund_percentage"`
}

type PolicyView struct {
	ID               uuid.UUID        `json:"id"`
	ProviderID       uuid.UUID        `json:"provider_id"`
	Name             string           `json:"name"`
	PolicyType       string           `json:"policy_type"`
	RefundRules      []RefundRuleView `json:"refund_rules"`
	FeePercentage    float64          `json:"cancellation_fee_percentage"`
	FeeFixedCents    int64            `json:"cancellation_fee_fixed_cents"`
	IsDefault        bool             `json:"is_default"`
	IsActive         bool             `json:"is_active"`
	ReplacesPolicyID *uuid.UUID       `json:"replaces_policy_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type TemplateView struct {
	PolicyType    string           `json:"policy_type"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	RefundRules   []RefundRuleView `json:"refund_rules"`
	FeePercentage float64          `json:"cancellation_fee_percentage"`
	FeeFixedCents int64            `json:"cancellation_fee_fixed_cents"`
}

type CancellationPreview struct {
	ReservationID         uuid.UUID  `json:"reservation_id"`
	CancelledBy           string     `json:"cancelled_by"`
	CanCancel             bool       `json:"can_cancel"`
	RequiresJustification bool       `json:"requires_justification"`
	Reason                string     `json:"reason"`
	HoursRemaining        float64    `json:"hours_remaining"`
	RefundPercentage      float64    `json:"refund_percentage"`
	GrossRefundCents      int64      `json:"gross_refund_cents"`
	FeeCents              int64      `json:"fee_cents"`
	RefundCents           int64      `json:"refund_cents"`
	PolicyID              *uuid.UUID `json:"policy_id,omitempty"`
	PolicyType            string     `json:"policy_type"`
}
