package bootstrap

import (
	"go.uber.org/fx"

	"hotel-reservation/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	RedisModule,
	components.InfraModule,
	components.UseCaseModule,
	components.HandlerModule,
)
