package components

import (
	"couponbot/internal/pkg/clock"
	"couponbot/internal/usecase/commands"
	"couponbot/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderCommands,
		commands.NewAccountCommands,
		commands.NewMerchantCommands,
		commands.NewAuthCommands,
		commands.NewMerchantAuthenticator,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewAccountQueries,
	),
)
