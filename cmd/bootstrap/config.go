package bootstrap

import (
	"couponbot/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// sub-configs so constructors depend only on the slice they use
		func(cfg config.Config) config.RazorpayConfig { return cfg.Razorpay },
		func(cfg config.Config) config.TelegramConfig { return cfg.Telegram },
		func(cfg config.Config) config.SMTPConfig { return cfg.SMTP },
		func(cfg config.Config) config.WebhookConfig { return cfg.Webhook },
	),
)
