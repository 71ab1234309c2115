package bootstrap

import (
	"shootbook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	GatewayModule,
	LockModule,
	components.PersistenceModule,
	components.UseCaseModule,
	MessagingModule,
	components.HandlerModule,
)
