package queries

import (
	"context"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type PolicyQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PolicyView, error)
	ListByProvider(ctx context.Context, providerID uuid.UUID, includeInactive bool) ([]*PolicyView, error)
	Templates(ctx context.Context) ([]*TemplateView, error)
}

type PolicyViewRepo interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*PolicyView, error)
	FindByProvider(ctx context.Context, providerID uuid.UUID, includeInactive bool) ([]*PolicyView, error)
}

type policyQueriesImpl struct {
	repo PolicyViewRepo
}

func NewPolicyQueries(repo PolicyViewRepo) PolicyQueries {
	return &policyQueriesImpl{repo: repo}
}

func (q *policyQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PolicyView, error) {
	view, err := q.repo.FindViewByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, errs.ErrPolicyNotFound)
	}
	return view, nil
}

func (q *policyQueriesImpl) ListByProvider(ctx context.Context, providerID uuid.UUID, includeInactive bool) ([]*PolicyView, error) {
	rows, err := q.repo.FindByProvider(ctx, providerID, includeInactive)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return rows, nil
}

func (q *policyQueriesImpl) Templates(_ context.Context) ([]*TemplateView, error) {
	all, err := cancellation.Templates()
	if err != nil {
		return nil, err
	}
	out := make([]*TemplateView, len(all))
	for i, t := range all {
		out[i] = &TemplateView{
			PolicyType:    t.Type.String(),
			Name:          t.Name,
			Description:   t.Description,
			RefundRules:   RefundRuleViews(t.Rules),
			FeePercentage: t.Fee.Percentage,
			FeeFixedCents: t.Fee.FixedCents,
		}
	}
	return out, nil
}

func RefundRuleViews(rules []cancellation.RefundRule) []RefundRuleView {
	out := make([]RefundRuleView, len(rules))
	for i, r := range rules {
		out[i] = RefundRuleView{HoursBefore: r.HoursBefore, RefundPercentage: r.RefundPercentage}
	}
	return out
}

func NewPolicyView(p *cancellation.Policy) *PolicyView {
	fee := p.Fee()
	return &PolicyView{
		ID:               p.ID(),
		ProviderID:       p.ProviderID(),
		Name:             p.Name(),
		PolicyType:       p.Type().String(),
		RefundRules:      RefundRuleViews(p.Rules()),
		FeePercentage:    fee.Percentage,
		FeeFixedCents:    fee.FixedCents,
		IsDefault:        p.IsDefault(),
		IsActive:         p.IsActive(),
		ReplacesPolicyID: p.ReplacesPolicyID(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}
