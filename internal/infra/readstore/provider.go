package readstore

import (
	"context"

	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProviderReadQueries interface {
	GetProviderPayoutAccount(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Providers, error)
}

type ProviderReadStore struct {
	queries ProviderReadQueries
	db      query.DBTX
}

func NewProviderReadStore(queries ProviderReadQueries, db query.DBTX) *ProviderReadStore {
	return &ProviderReadStore{queries: queries, db: db}
}

// PayoutAccount returns an unconfigured snapshot for unknown providers.
func (r *ProviderReadStore) PayoutAccount(ctx context.Context, providerID uuid.UUID) (*shared.PayoutAccountSnapshot, error) {
	row, err := r.queries.GetProviderPayoutAccount(ctx, r.db, providerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return &shared.PayoutAccountSnapshot{ProviderID: providerID}, nil
		}
		return nil, infra.WrapRepoErr("failed to get payout account", err)
	}
	return &shared.PayoutAccountSnapshot{
		ProviderID: row.ID,
		AccountID:  row.PayoutAccountID.String,
	}, nil
}
