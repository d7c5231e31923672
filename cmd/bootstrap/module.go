package bootstrap

import (
	"couponbot/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.OutboundModule,
	components.UseCaseModule,
	components.HandlerModule,
)
