package repository

import (
	"context"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/repository/converter"
)

type PolicyWriteQueries interface {
	CreateCancellationPolicy(ctx context.Context, db query.DBTX, arg query.CreateCancellationPolicyParams) error
	UpdateCancellationPolicyFlags(ctx context.Context, db query.DBTX, arg query.UpdateCancellationPolicyFlagsParams) (int64, error)
}

type PolicyRepository struct {
	queries PolicyWriteQueries
	db      query.DBTX
}

func NewPolicyRepository(queries PolicyWriteQueries, db query.DBTX) *PolicyRepository {
	return &PolicyRepository{queries: queries, db: db}
}

func (r *PolicyRepository) Create(ctx context.Context, p *cancellation.Policy) error {
	params, err := converter.PolicyToParams(p)
	if err != nil {
		return infra.WrapRepoErr("failed to encode policy", err, infra.KindDBFailure)
	}
	if err := r.queries.CreateCancellationPolicy(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create policy", err)
	}
	return nil
}

func (r *PolicyRepository) UpdateFlags(ctx context.Context, p *cancellation.Policy) error {
	affected, err := r.queries.UpdateCancellationPolicyFlags(ctx, r.db, query.UpdateCancellationPolicyFlagsParams{
		ID:        p.ID(),
		IsDefault: p.IsDefault(),
		IsActive:  p.IsActive(),
		UpdatedAt: p.UpdatedAt(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update policy flags", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("policy not found", nil, infra.KindNotFound)
	}
	return nil
}
