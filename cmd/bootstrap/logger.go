package bootstrap

import (
	"log/slog"

	"go.uber.org/fx"

	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/config"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		NewSlogLogger,
	),
)

func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}
