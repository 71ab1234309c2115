//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shootbook/internal/infra/db/query"
	"shootbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateProvider registers a provider row. An empty payoutAccount leaves the
// provider unable to receive transfers.
func CreateProvider(t *testing.T, db DBLike, payoutAccount string) uuid.UUID {
	t.Helper()

	providerID := uuid.New()
	err := query.New().UpsertProvider(context.Background(), db, providerID, pgconv.EmptyAsNullText(payoutAccount))
	require.NoError(t, err)

	return providerID
}

// CountEvents counts outbox rows of one reservation, optionally filtered by status.
func CountEvents(t *testing.T, db DBLike, reservationID uuid.UUID, status string) int {
	t.Helper()

	var n int
	sql := "SELECT count(*) FROM payment_events WHERE aggregate_id = $1"
	args := []any{reservationID}
	if status != "" {
		sql += " AND status = $2"
		args = append(args, status)
	}
	err := db.QueryRow(context.Background(), sql, args...).Scan(&n)
	require.NoError(t, err)

	return n
}

// EventTypes lists the outbox event types of one reservation in the order they were recorded.
func EventTypes(t *testing.T, db DBLike, reservationID uuid.UUID) []string {
	t.Helper()

	rows, err := db.Query(context.Background(),
		"SELECT event_type FROM payment_events WHERE aggregate_id = $1 ORDER BY occurred_at, id", reservationID)
	require.NoError(t, err)
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())

	return out
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
