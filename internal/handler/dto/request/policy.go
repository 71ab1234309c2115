package request

import (
	"strings"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/pkg/patch"
	"shootbook/internal/usecase/commands"
	"shootbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RefundRuleRequest struct {
	HoursBefore      float64 `json:"hours_before" binding:"min=0"`
	RefundPercentage float64 `json:"refund_percentage" binding:"min=0,max=100"`
}

// CreatePolicyRequest takes either a template name or explicit terms.
// ProviderID is only honoured for admins.
type CreatePolicyRequest struct {
	ProviderID    *uuid.UUID          `json:"provider_id,omitempty"`
	Name          string              `json:"name" binding:"required,max=100"`
	Template      *string             `json:"template,omitempty" binding:"omitempty,oneof=flexible moderate strict"`
	PolicyType    string              `json:"policy_type" binding:"omitempty,oneof=flexible moderate strict custom"`
	RefundRules   []RefundRuleRequest `json:"refund_rules" binding:"omitempty,dive"`
	FeePercentage float64             `json:"cancellation_fee_percentage" binding:"min=0,max=100"`
	FeeFixedCents int64               `json:"cancellation_fee_fixed_cents" binding:"min=0"`
	MakeDefault   bool                `json:"make_default"`
}

func (r CreatePolicyRequest) ToCommand(providerID uuid.UUID) (commands.PolicyRequest, error) {
	out := commands.PolicyRequest{
		ProviderID:  providerID,
		Name:        strings.TrimSpace(r.Name),
		Rules:       toRules(r.RefundRules),
		Fee:         cancellation.Fee{Percentage: r.FeePercentage, FixedCents: r.FeeFixedCents},
		MakeDefault: r.MakeDefault,
	}
	if r.Template != nil {
		t, err := cancellation.ParsePolicyType(*r.Template)
		if err != nil {
			return commands.PolicyRequest{}, err
		}
		out.Template = &t
		return out, nil
	}
	t, err := cancellation.ParsePolicyType(patch.Coalesce(nilIfEmpty(r.PolicyType), cancellation.PolicyTypeCustom.String()))
	if err != nil {
		return commands.PolicyRequest{}, err
	}
	out.Type = t
	return out, nil
}

// UpdatePolicyRequest patches the current revision; omitted fields keep their value.
type UpdatePolicyRequest struct {
	Name          *string              `json:"name" binding:"omitempty,max=100"`
	PolicyType    *string              `json:"policy_type" binding:"omitempty,oneof=flexible moderate strict custom"`
	RefundRules   *[]RefundRuleRequest `json:"refund_rules" binding:"omitempty"`
	FeePercentage *float64             `json:"cancellation_fee_percentage" binding:"omitempty,min=0,max=100"`
	FeeFixedCents *int64               `json:"cancellation_fee_fixed_cents" binding:"omitempty,min=0"`
}

func (r UpdatePolicyRequest) ToCommand(existing *queries.PolicyView) (commands.PolicyRequest, error) {
	t, err := cancellation.ParsePolicyType(patch.Coalesce(r.PolicyType, existing.PolicyType))
	if err != nil {
		return commands.PolicyRequest{}, err
	}
	rules := patch.Map(r.RefundRules, toRules, fromRuleViews(existing.RefundRules))
	return commands.PolicyRequest{
		ProviderID: existing.ProviderID,
		Name:       strings.TrimSpace(patch.Coalesce(r.Name, existing.Name)),
		Type:       t,
		Rules:      rules,
		Fee: cancellation.Fee{
			Percentage: patch.Coalesce(r.FeePercentage, existing.FeePercentage),
			FixedCents: patch.Coalesce(r.FeeFixedCents, existing.FeeFixedCents),
		},
	}, nil
}

func toRules(in []RefundRuleRequest) []cancellation.RefundRule {
	out := make([]cancellation.RefundRule, len(in))
	for i, r := range in {
		out[i] = cancellation.RefundRule{HoursBefore: r.HoursBefore, RefundPercentage: r.RefundPercentage}
	}
	return out
}

func fromRuleViews(in []queries.RefundRuleView) []cancellation.RefundRule {
	out := make([]cancellation.RefundRule, len(in))
	for i, r := range in {
		out[i] = cancellation.RefundRule{HoursBefore: r.HoursBefore, RefundPercentage: r.RefundPercentage}
	}
	return out
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
