package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel-reservation/internal/domain/availability"
	usecaseavail "hotel-reservation/internal/usecase/availability"
)

type CalendarSource interface {
	MonthCalendar(ctx context.Context, hotelID, roomID string, month availability.Month) ([]availability.Day, error)
}

// Calendar serves month calendars from Redis and falls through to next on a
// miss or on any Redis failure. A fresh-calendar context skips the read and
// refreshes the cached month.
type Calendar struct {
	next   CalendarSource
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCalendar(next CalendarSource, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Calendar {
	return &Calendar{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func CalendarKey(hotelID, roomID string, month availability.Month) string {
	return fmt.Sprintf("availability:%s:%s:%s", hotelID, roomID, month)
}

func (c *Calendar) MonthCalendar(ctx context.Context, hotelID, roomID string, month availability.Month) ([]availability.Day, error) {
	key := CalendarKey(hotelID, roomID, month)

	if !usecaseavail.FreshCalendar(ctx) {
		var days []availability.Day
		hit, err := getJSON(ctx, c.rdb, key, &days)
		if err != nil {
			c.logger.Warn("calendar cache read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		if hit {
			return days, nil
		}
	}

	days, err := c.next.MonthCalendar(ctx, hotelID, roomID, month)
	if err != nil {
		return nil, err
	}
	if err := setJSON(ctx, c.rdb, key, days, c.ttl); err != nil {
		c.logger.Warn("calendar cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return days, nil
}
