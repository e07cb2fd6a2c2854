package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/infra/bookingapi"
)

type RoomSource interface {
	RoomDetails(ctx context.Context, q bookingapi.RoomQuery) (room.APIRoom, error)
}

// Rooms caches room details per stay, since rates vary with the date filter.
type Rooms struct {
	next   RoomSource
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewRooms(next RoomSource, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Rooms {
	return &Rooms{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func RoomKey(q bookingapi.RoomQuery) string {
	if q.Dates.IsZero() {
		return fmt.Sprintf("room:%s:%s", q.HotelID, q.RoomID)
	}
	return fmt.Sprintf("room:%s:%s:%s:%s", q.HotelID, q.RoomID, q.Dates.CheckInString(), q.Dates.CheckOutString())
}

func (r *Rooms) RoomDetails(ctx context.Context, q bookingapi.RoomQuery) (room.APIRoom, error) {
	key := RoomKey(q)

	var cached room.APIRoom
	hit, err := getJSON(ctx, r.rdb, key, &cached)
	if err != nil {
		r.logger.Warn("room cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if hit {
		return cached, nil
	}

	fresh, err := r.next.RoomDetails(ctx, q)
	if err != nil {
		return room.APIRoom{}, err
	}
	if err := setJSON(ctx, r.rdb, key, fresh, r.ttl); err != nil {
		r.logger.Warn("room cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return fresh, nil
}
