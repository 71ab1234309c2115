package bootstrap

import (
	"log/slog"

	"shootbook/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// Secrets are never logged.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"db_host", cfg.DB.Host,
		"db_name", cfg.DB.DBName,
		"gateway_base_url", cfg.Gateway.BaseURL,
		"currency", cfg.Gateway.Currency,
		"default_deposit_percentage", cfg.Payment.DefaultDepositPercentage,
		"lock_backend", cfg.Lock.Backend,
		"amqp_enabled", cfg.AMQP.Enabled,
		"outbox_poll_interval", cfg.Outbox.PollInterval)
}
