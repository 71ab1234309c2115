package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const policyColumns = `id, provider_id, name, policy_type, refund_rules, fee_percentage, fee_fixed_cents,
       is_default, is_active, replaces_policy_id, created_at, updated_at`

const createCancellationPolicy = `-- name: CreateCancellationPolicy :exec
INSERT INTO cancellation_policies (
    id, provider_id, name, policy_type, refund_rules, fee_percentage, fee_fixed_cents,
    is_default, is_active, replaces_policy_id, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type CreateCancellationPolicyParams struct {
	ID               uuid.UUID
	ProviderID       uuid.UUID
	Name             string
	PolicyType       string
	RefundRules      []byte
	FeePercentage    float64
	FeeFixedCents    int64
	IsDefault        bool
	IsActive         bool
	ReplacesPolicyID pgtype.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) CreateCancellationPolicy(ctx context.Context, db DBTX, arg CreateCancellationPolicyParams) error {
	_, err := db.Exec(ctx, createCancellationPolicy,
		arg.ID,
		arg.ProviderID,
		arg.Name,
		arg.PolicyType,
		arg.RefundRules,
		arg.FeePercentage,
		arg.FeeFixedCents,
		arg.IsDefault,
		arg.IsActive,
		arg.ReplacesPolicyID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateCancellationPolicyFlags = `-- name: UpdateCancellationPolicyFlags :execrows
UPDATE cancellation_policies
SET is_default = $2, is_active = $3, updated_at = $4
WHERE id = $1
`

type UpdateCancellationPolicyFlagsParams struct {
	ID        uuid.UUID
	IsDefault bool
	IsActive  bool
	UpdatedAt time.Time
}

func (q *Queries) UpdateCancellationPolicyFlags(ctx context.Context, db DBTX, arg UpdateCancellationPolicyFlagsParams) (int64, error) {
	tag, err := db.Exec(ctx, updateCancellationPolicyFlags, arg.ID, arg.IsDefault, arg.IsActive, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getCancellationPolicyByID = `-- name: GetCancellationPolicyByID :one
SELECT ` + policyColumns + `
FROM cancellation_policies
WHERE id = $1
`

func (q *Queries) GetCancellationPolicyByID(ctx context.Context, db DBTX, id uuid.UUID) (CancellationPolicies, error) {
	return scanPolicy(db.QueryRow(ctx, getCancellationPolicyByID, id))
}

const getDefaultCancellationPolicy = `-- name: GetDefaultCancellationPolicy :one
SELECT ` + policyColumns + `
FROM cancellation_policies
WHERE provider_id = $1 AND is_default AND is_active
`

func (q *Queries) GetDefaultCancellationPolicy(ctx context.Context, db DBTX, providerID uuid.UUID) (CancellationPolicies, error) {
	return scanPolicy(db.QueryRow(ctx, getDefaultCancellationPolicy, providerID))
}

const listCancellationPoliciesByProvider = `-- name: ListCancellationPoliciesByProvider :many
SELECT ` + policyColumns + `
FROM cancellation_policies
WHERE provider_id = $1 AND (is_active OR $2::boolean)
ORDER BY is_default DESC, created_at DESC
`

func (q *Queries) ListCancellationPoliciesByProvider(ctx context.Context, db DBTX, providerID uuid.UUID, includeInactive bool) ([]CancellationPolicies, error) {
	rows, err := db.Query(ctx, listCancellationPoliciesByProvider, providerID, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CancellationPolicies
	for rows.Next() {
		i, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanPolicy(row pgx.Row) (CancellationPolicies, error) {
	var i CancellationPolicies
	err := row.Scan(
		&i.ID,
		&i.ProviderID,
		&i.Name,
		&i.PolicyType,
		&i.RefundRules,
		&i.FeePercentage,
		&i.FeeFixedCents,
		&i.IsDefault,
		&i.IsActive,
		&i.ReplacesPolicyID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
