package components

import (
	"couponbot/internal/infra/gateway"
	"couponbot/internal/infra/notify"
	"couponbot/internal/usecase/commands"

	"go.uber.org/fx"
)

// OutboundModule wires the clients that talk to the outside world:
// the payment gateway, buyer notification channels and merchant webhooks.
var OutboundModule = fx.Module("outbound",
	fx.Provide(
		fx.Annotate(
			gateway.NewRazorpayClient,
			fx.As(new(commands.PaymentGateway)),
		),
		notify.NewTelegramClient,
		notify.NewEmailClient,
		fx.Annotate(
			notify.NewCouponNotifier,
			fx.As(new(commands.Notifier)),
		),
		fx.Annotate(
			notify.NewWebhookClient,
			fx.As(new(commands.WebhookSender)),
		),
	),
)
