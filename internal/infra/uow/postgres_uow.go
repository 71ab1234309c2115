package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"shootbook/internal/domain/cancellation"
	"shootbook/internal/domain/payment"
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/readstore"
	"shootbook/internal/infra/repository"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/errs"
	"shootbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *query.Queries
	clock clock.Clock
}

func NewPostgresUoW(pool *pgxpool.Pool, q *query.Queries, clk clock.Clock) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		q:     q,
		clock: clk,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx query.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	reservationRepo shared.ReservationRepository
	transactionRepo shared.TransactionRepository
	policyRepo      shared.PolicyRepository
	outboxRepo      shared.OutboxRepository
	idempotencyRepo shared.IdempotencyRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.uow.q, t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Transactions() shared.TransactionRepository {
	if t.transactionRepo == nil {
		t.transactionRepo = repository.NewTransactionRepository(t.uow.q, t.dbtx)
	}
	return t.transactionRepo
}

func (t *pgTx) Policies() shared.PolicyRepository {
	if t.policyRepo == nil {
		t.policyRepo = repository.NewPolicyRepository(t.uow.q, t.dbtx)
	}
	return t.policyRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.uow.q, t.dbtx)
	}
	return t.outboxRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q, t.dbtx)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.uow, t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	reservations *readstore.ReservationReadStore
	policies     *readstore.PolicyReadStore
	providers    *readstore.ProviderReadStore
	idempotency  *readstore.IdempotencyReadStore
}

func newCommandReads(u *PostgresUoW, dbtx query.DBTX) *commandReads {
	return &commandReads{
		reservations: readstore.NewReservationReadStore(u.q, dbtx),
		policies:     readstore.NewPolicyReadStore(u.q, dbtx),
		providers:    readstore.NewProviderReadStore(u.q, dbtx),
		idempotency:  readstore.NewIdempotencyReadStore(u.q, dbtx, u.clock.Now),
	}
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*payment.Reservation, error) {
	return r.reservations.Load(ctx, id)
}

func (r *commandReads) TransactionsByReservation(ctx context.Context, reservationID uuid.UUID) ([]*payment.Transaction, error) {
	return r.reservations.LoadTransactions(ctx, reservationID)
}

func (r *commandReads) PolicyByID(ctx context.Context, id uuid.UUID) (*cancellation.Policy, error) {
	return r.policies.FindByID(ctx, id)
}

func (r *commandReads) DefaultPolicy(ctx context.Context, providerID uuid.UUID) (*cancellation.Policy, error) {
	return r.policies.FindDefault(ctx, providerID)
}

func (r *commandReads) PayoutAccount(ctx context.Context, providerID uuid.UUID) (*shared.PayoutAccountSnapshot, error) {
	return r.providers.PayoutAccount(ctx, providerID)
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idempotency.Get(ctx, key, userID)
}
