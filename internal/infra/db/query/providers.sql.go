package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getProviderPayoutAccount = `-- name: GetProviderPayoutAccount :one
SELECT id, payout_account_id
FROM providers
WHERE id = $1
`

func (q *Queries) GetProviderPayoutAccount(ctx context.Context, db DBTX, id uuid.UUID) (Providers, error) {
	row := db.QueryRow(ctx, getProviderPayoutAccount, id)
	var i Providers
	err := row.Scan(&i.ID, &i.PayoutAccountID)
	return i, err
}

const upsertProvider = `-- name: UpsertProvider :exec
INSERT INTO providers (id, payout_account_id)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET payout_account_id = EXCLUDED.payout_account_id, updated_at = now()
`

func (q *Queries) UpsertProvider(ctx context.Context, db DBTX, id uuid.UUID, payoutAccountID pgtype.Text) error {
	_, err := db.Exec(ctx, upsertProvider, id, payoutAccountID)
	return err
}
