package bootstrap

import (
	"log/slog"
	"os"

	"go.uber.org/fx"
)

// LoggerModule is the fallback logger wiring used where main's configured
// logger is not in play (the e2e harness builds its app from this).
var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", "couponbot"),
	)
}
