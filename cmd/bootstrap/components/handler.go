package components

import (
	"couponbot/internal/handler"
	"couponbot/internal/handler/api"
	"couponbot/internal/handler/middleware"
	"couponbot/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAccountHandler,
		api.NewOrderHandler,
		api.NewPaymentHandler,
		api.NewMerchantHandler,
		api.NewAdminHandler,
		func(svc *jwt.Service) middleware.TokenValidator { return svc },
		middleware.NewAuthMiddleware,
		middleware.NewMerchantAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
