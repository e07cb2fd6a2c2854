package components

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"hotel-reservation/internal/handler"
	"hotel-reservation/internal/handler/api"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewRoomHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config, clk clock.Clock) *middleware.RateLimiter {
			return middleware.NewRateLimiter(cfg.RateLimit, clk)
		},
	),
	fx.Invoke(registerRoutes),
)

type routeDeps struct {
	fx.In

	Engine      *gin.Engine
	Config      config.Config
	Reservation *api.ReservationHandler
	Room        *api.RoomHandler
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	Logger      *middleware.Logger
}

func registerRoutes(d routeDeps) error {
	return handler.NewRouter(d.Engine, d.Config, handler.Handlers{
		Reservation: d.Reservation,
		Room:        d.Room,
		Auth:        d.Auth,
		RateLimiter: d.RateLimiter,
		Logger:      d.Logger,
	})
}
