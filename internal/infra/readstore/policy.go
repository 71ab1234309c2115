package readstore

import (
	"context"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/repository/converter"
	"shootbook/internal/pkg/pgconv"
	"shootbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type PolicyReadQueries interface {
	GetCancellationPolicyByID(ctx context.Context, db query.DBTX, id uuid.UUID) (query.CancellationPolicies, error)
	GetDefaultCancellationPolicy(ctx context.Context, db query.DBTX, providerID uuid.UUID) (query.CancellationPolicies, error)
	ListCancellationPoliciesByProvider(ctx context.Context, db query.DBTX, providerID uuid.UUID, includeInactive bool) ([]query.CancellationPolicies, error)
}

type PolicyReadStore struct {
	queries PolicyReadQueries
	db      query.DBTX
}

func NewPolicyReadStore(queries PolicyReadQueries, db query.DBTX) *PolicyReadStore {
	return &PolicyReadStore{queries: queries, db: db}
}

func (r *PolicyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*cancellation.Policy, error) {
	row, err := r.queries.GetCancellationPolicyByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("policy not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find policy by ID", err)
	}
	return decodePolicy(row)
}

func (r *PolicyReadStore) FindDefault(ctx context.Context, providerID uuid.UUID) (*cancellation.Policy, error) {
	row, err := r.queries.GetDefaultCancellationPolicy(ctx, r.db, providerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("provider has no default policy", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find default policy", err)
	}
	return decodePolicy(row)
}

func (r *PolicyReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.PolicyView, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return queries.NewPolicyView(p), nil
}

func (r *PolicyReadStore) FindByProvider(ctx context.Context, providerID uuid.UUID, includeInactive bool) ([]*queries.PolicyView, error) {
	rows, err := r.queries.ListCancellationPoliciesByProvider(ctx, r.db, providerID, includeInactive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list policies", err)
	}
	result := make([]*queries.PolicyView, 0, len(rows))
	for _, row := range rows {
		p, err := decodePolicy(row)
		if err != nil {
			return nil, err
		}
		result = append(result, queries.NewPolicyView(p))
	}
	return result, nil
}

func decodePolicy(row query.CancellationPolicies) (*cancellation.Policy, error) {
	p, err := converter.PolicyFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode policy", err, infra.KindDBFailure)
	}
	return p, nil
}
