package repository

import (
	"context"

	"shootbook/internal/domain/payment"
	"shootbook/internal/infra"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/repository/converter"
)

type TransactionWriteQueries interface {
	CreatePaymentTransaction(ctx context.Context, db query.DBTX, arg query.CreatePaymentTransactionParams) error
}

type TransactionRepository struct {
	queries TransactionWriteQueries
	db      query.DBTX
}

func NewTransactionRepository(queries TransactionWriteQueries, db query.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: queries, db: db}
}

func (r *TransactionRepository) Append(ctx context.Context, t *payment.Transaction) error {
	params, err := converter.TransactionToParams(t)
	if err != nil {
		return infra.WrapRepoErr("failed to encode transaction", err, infra.KindDBFailure)
	}
	if err := r.queries.CreatePaymentTransaction(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to append transaction", err)
	}
	return nil
}
