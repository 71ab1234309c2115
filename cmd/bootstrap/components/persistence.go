package components

import (
	"shootbook/internal/infra/db/query"
	"shootbook/internal/infra/readstore"
	"shootbook/internal/infra/uow"
	"shootbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationReadQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		// Policy
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.PolicyReadQueries)),
		),
		fx.Annotate(
			readstore.NewPolicyReadStore,
			fx.As(new(queries.PolicyViewRepo)),
		),
	),
)

// Write repositories are bound per transaction inside the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *query.Queries {
	return query.New()
}

func NewDBTX(pool *pgxpool.Pool) query.DBTX {
	return pool
}
