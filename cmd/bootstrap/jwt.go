package bootstrap

import (
	"time"

	"go.uber.org/fx"

	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/jwt"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, err
	}
	return jwt.NewService(cfg.JWT.Secret, duration), nil
}
