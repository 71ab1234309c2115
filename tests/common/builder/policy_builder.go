//go:build unit || e2e

package builder

import (
	"time"

	"shootbook/internal/domain/cancellation"

	"github.com/google/uuid"
)

type PolicyBuilder struct {
	ID               uuid.UUID
	ProviderID       uuid.UUID
	Name             string
	Type             cancellation.PolicyType
	Rules            []cancellation.RefundRule
	Fee              cancellation.Fee
	IsDefault        bool
	IsActive         bool
	ReplacesPolicyID *uuid.UUID
	CreatedAt        time.Time
}

func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{
		ID:         uuid.New(),
		ProviderID: uuid.New(),
		Name:       "Flexible",
		Type:       cancellation.PolicyTypeFlexible,
		Rules: []cancellation.RefundRule{
			{HoursBefore: 24, RefundPercentage: 100},
			{HoursBefore: 0, RefundPercentage: 50},
		},
		IsActive:  true,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (b *PolicyBuilder) BuildDomain() *cancellation.Policy {
	return cancellation.ReconstructPolicy(cancellation.ReconstructParams{
		ID:               b.ID,
		ProviderID:       b.ProviderID,
		Name:             b.Name,
		Type:             b.Type,
		Rules:            b.Rules,
		Fee:              b.Fee,
		IsDefault:        b.IsDefault,
		IsActive:         b.IsActive,
		ReplacesPolicyID: b.ReplacesPolicyID,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	})
}

func (b *PolicyBuilder) Spec() cancellation.PolicySpec {
	return cancellation.PolicySpec{
		ProviderID: b.ProviderID,
		Name:       b.Name,
		Type:       b.Type,
		Rules:      b.Rules,
		Fee:        b.Fee,
	}
}

func (b *PolicyBuilder) WithID(id uuid.UUID) *PolicyBuilder {
	b.ID = id
	return b
}

func (b *PolicyBuilder) WithProviderID(id uuid.UUID) *PolicyBuilder {
	b.ProviderID = id
	return b
}

func (b *PolicyBuilder) WithRules(rules ...cancellation.RefundRule) *PolicyBuilder {
	b.Rules = rules
	return b
}

func (b *PolicyBuilder) WithFee(percentage float64, fixedCents int64) *PolicyBuilder {
	b.Fee = cancellation.Fee{Percentage: percentage, FixedCents: fixedCents}
	return b
}

func (b *PolicyBuilder) AsDefault() *PolicyBuilder {
	b.IsDefault = true
	return b
}

func (b *PolicyBuilder) AsInactive() *PolicyBuilder {
	b.IsActive = false
	return b
}

// AsModerate: 100% at 7 days or more, 50% at 24 hours or more, nothing after.
func (b *PolicyBuilder) AsModerate() *PolicyBuilder {
	b.Name = "Moderate"
	b.Type = cancellation.PolicyTypeModerate
	b.Rules = []cancellation.RefundRule{
		{HoursBefore: 168, RefundPercentage: 100},
		{HoursBefore: 24, RefundPercentage: 50},
		{HoursBefore: 0, RefundPercentage: 0},
	}
	return b
}

func (b *PolicyBuilder) AsStrict() *PolicyBuilder {
	b.Name = "Strict"
	b.Type = cancellation.PolicyTypeStrict
	b.Rules = nil
	return b
}
