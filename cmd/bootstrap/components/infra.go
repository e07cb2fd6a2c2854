package components

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"hotel-reservation/internal/infra/bookingapi"
	"hotel-reservation/internal/infra/cache"
	"hotel-reservation/internal/infra/roomcatalog"
	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/usecase/availability"
	"hotel-reservation/internal/usecase/commands"
	"hotel-reservation/internal/usecase/queries"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewRealClock,
		NewBookingClient,
		fx.Annotate(
			func(c *bookingapi.Client) *bookingapi.Client { return c },
			fx.As(new(commands.BookingGateway)),
		),
		NewCalendarSource,
		NewRoomCatalog,
		NewIdempotencyStore,
	),
)

func NewBookingClient(cfg config.Config, logger *slog.Logger) *bookingapi.Client {
	return bookingapi.NewClient(cfg.BookingAPI, logger)
}

func NewCalendarSource(client *bookingapi.Client, rdb *redis.Client, cfg config.Config, logger *slog.Logger) availability.CalendarSource {
	if rdb == nil {
		return client
	}
	return cache.NewCalendar(client, rdb, cfg.Redis.AvailabilityTTL, logger)
}

func NewRoomCatalog(client *bookingapi.Client, rdb *redis.Client, cfg config.Config, logger *slog.Logger) (queries.RoomCatalog, error) {
	static, err := roomcatalog.LoadStatic(cfg.Catalog.StaticRoomsFile)
	if err != nil {
		return nil, err
	}

	var live roomcatalog.RoomSource = client
	if rdb != nil {
		live = cache.NewRooms(client, rdb, cfg.Redis.RoomTTL, logger)
	}
	return roomcatalog.New(live, static, logger), nil
}

func NewIdempotencyStore(rdb *redis.Client, clk clock.Clock) commands.IdempotencyStore {
	if rdb == nil {
		return commands.NopIdempotencyStore{}
	}
	return cache.NewIdempotencyStore(rdb, clk)
}
