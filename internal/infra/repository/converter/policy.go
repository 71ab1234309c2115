package converter

import (
	"encoding/json"
	"fmt"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"
)

func PolicyToParams(p *cancellation.Policy) (query.CreateCancellationPolicyParams, error) {
	rules := p.Rules()
	if rules == nil {
		rules = []cancellation.RefundRule{}
	}
	b, err := json.Marshal(rules)
	if err != nil {
		return query.CreateCancellationPolicyParams{}, fmt.Errorf("marshal refund rules: %w", err)
	}
	fee := p.Fee()
	return query.CreateCancellationPolicyParams{
		ID:               p.ID(),
		ProviderID:       p.ProviderID(),
		Name:             p.Name(),
		PolicyType:       p.Type().String(),
		RefundRules:      b,
		FeePercentage:    fee.Percentage,
		FeeFixedCents:    fee.FixedCents,
		IsDefault:        p.IsDefault(),
		IsActive:         p.IsActive(),
		ReplacesPolicyID: pgconv.UUIDPtrToPgtype(p.ReplacesPolicyID()),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}, nil
}

func PolicyFromRow(row query.CancellationPolicies) (*cancellation.Policy, error) {
	pt, err := cancellation.ParsePolicyType(row.PolicyType)
	if err != nil {
		return nil, err
	}
	var rules []cancellation.RefundRule
	if len(row.RefundRules) > 0 {
		if err := json.Unmarshal(row.RefundRules, &rules); err != nil {
			return nil, fmt.Errorf("policy %s refund rules: %w", row.ID, err)
		}
	}
	return cancellation.ReconstructPolicy(cancellation.ReconstructParams{
		ID:               row.ID,
		ProviderID:       row.ProviderID,
		Name:             row.Name,
		Type:             pt,
		Rules:            rules,
		Fee:              cancellation.Fee{Percentage: row.FeePercentage, FixedCents: row.FeeFixedCents},
		IsDefault:        row.IsDefault,
		IsActive:         row.IsActive,
		ReplacesPolicyID: pgconv.UUIDPtrFromPgtype(row.ReplacesPolicyID),
		CreatedAt:        row.CreatedAt.UTC(),
		UpdatedAt:        row.UpdatedAt.UTC(),
	}), nil
}
