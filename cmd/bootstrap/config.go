package bootstrap

import (
	"go.uber.org/fx"

	"hotel-reservation/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
