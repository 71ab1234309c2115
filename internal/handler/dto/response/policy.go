package response

import (
	"time"

	"shootbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type RefundRuleResponse struct {
	HoursBefore      float64 `json:"hoursBefore"`
	RefundPercentage float64 `json:"refundPercentage"`
}

type PolicyResponse struct {
	ID               uuid.UUID            `json:"id"`
	ProviderID       uuid.UUID            `json:"providerId"`
	Name             string               `json:"name"`
	PolicyType       string               `json:"policyType"`
	RefundRules      []RefundRuleResponse `json:"refundRules"`
	FeePercentage    float64              `json:"cancellationFeePercentage"`
	FeeFixedCents    int64                `json:"cancellationFeeFixedCents"`
	IsDefault        bool                 `json:"isDefault"`
	IsActive         bool                 `json:"isActive"`
	ReplacesPolicyID *uuid.UUID           `json:"replacesPolicyId,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

type TemplateResponse struct {
	PolicyType    string               `json:"policyType"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	RefundRules   []RefundRuleResponse `json:"refundRules"`
	FeePercentage float64              `json:"cancellationFeePercentage"`
	FeeFixedCents int64                `json:"cancellationFeeFixedCents"`
}

func FromPolicyView(v *queries.PolicyView) *PolicyResponse {
	return &PolicyResponse{
		ID:               v.ID,
		ProviderID:       v.ProviderID,
		Name:             v.Name,
		PolicyType:       v.PolicyType,
		RefundRules:      fromRuleViews(v.RefundRules),
		FeePercentage:    v.FeePercentage,
		FeeFixedCents:    v.FeeFixedCents,
		IsDefault:        v.IsDefault,
		IsActive:         v.IsActive,
		ReplacesPolicyID: v.ReplacesPolicyID,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func FromPolicyViews(views []*queries.PolicyView) []*PolicyResponse {
	res := make([]*PolicyResponse, len(views))
	for i, v := range views {
		res[i] = FromPolicyView(v)
	}
	return res
}

func FromTemplateViews(views []*queries.TemplateView) []*TemplateResponse {
	res := make([]*TemplateResponse, len(views))
	for i, v := range views {
		res[i] = &TemplateResponse{
			PolicyType:    v.PolicyType,
			Name:          v.Name,
			Description:   v.Description,
			RefundRules:   fromRuleViews(v.RefundRules),
			FeePercentage: v.FeePercentage,
			FeeFixedCents: v.FeeFixedCents,
		}
	}
	return res
}

func fromRuleViews(rules []queries.RefundRuleView) []RefundRuleResponse {
	out := make([]RefundRuleResponse, len(rules))
	for i, r := range rules {
		out[i] = RefundRuleResponse{HoursBefore: r.HoursBefore, RefundPercentage: r.RefundPercentage}
	}
	return out
}
