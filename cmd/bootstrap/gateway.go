package bootstrap

import (
	"shootbook/internal/infra/gateway"
	"shootbook/internal/pkg/config"
	"shootbook/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewGatewayClient,
			fx.As(new(shared.PaymentGateway)),
		),
	),
)

func NewGatewayClient(cfg config.Config) *gateway.Client {
	return gateway.NewClient(cfg.Gateway)
}
