package components

import (
	"shootbook/internal/infra/metrics"
	"shootbook/internal/pkg/clock"
	"shootbook/internal/pkg/config"
	"shootbook/internal/usecase"
	"shootbook/internal/usecase/commands"
	"shootbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		metrics.NewPaymentObserver,
		fx.As(new(commands.PaymentObserver)),
	),
	func(cfg config.Config) commands.PaymentSettings {
		return commands.PaymentSettings{
			Currency:                 cfg.Gateway.Currency,
			DefaultDepositPercentage: cfg.Payment.DefaultDepositPercentage,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPaymentUseCase,
		commands.NewReservationUseCase,
		commands.NewPolicyUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewPolicyQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
