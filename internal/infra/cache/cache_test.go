//go:build e2e

package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"hotel-reservation/internal/domain/availability"
	"hotel-reservation/internal/domain/ratecard"
	"hotel-reservation/internal/domain/room"
	"hotel-reservation/internal/domain/stay"
	"hotel-reservation/internal/infra/bookingapi"
	"hotel-reservation/internal/infra/cache"
	"hotel-reservation/internal/pkg/clock"
	usecaseavail "hotel-reservation/internal/usecase/availability"
	"hotel-reservation/internal/usecase/commands"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = c.Terminate(ctx)
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, nat.Port("6379/tcp"))
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, cache.Ping(ctx, rdb))
	return rdb
}

type countingCalendar struct {
	mu    sync.Mutex
	calls int
	days  []availability.Day
	err   error
}

func (c *countingCalendar) MonthCalendar(context.Context, string, string, availability.Month) ([]availability.Day, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.days, c.err
}

type countingRooms struct {
	calls int
	room  room.APIRoom
}

func (c *countingRooms) RoomDetails(context.Context, bookingapi.RoomQuery) (room.APIRoom, error) {
	c.calls++
	return c.room, nil
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestCalendarCache(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	march := availability.Month{Year: 2025, Month: time.March}

	t.Run("second read is served from redis", func(t *testing.T) {
		src := &countingCalendar{days: []availability.Day{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Available: 3},
		}}
		c := cache.NewCalendar(src, rdb, time.Minute, discard())

		first, err := c.MonthCalendar(ctx, "h-hit", "r1", march)
		require.NoError(t, err)
		second, err := c.MonthCalendar(ctx, "h-hit", "r1", march)
		require.NoError(t, err)

		assert.Equal(t, 1, src.calls)
		require.Len(t, second, 1)
		assert.Equal(t, first[0].Available, second[0].Available)
		assert.True(t, second[0].Date.Equal(first[0].Date))
	})

	t.Run("upstream errors are not cached", func(t *testing.T) {
		src := &countingCalendar{err: errors.New("boom")}
		c := cache.NewCalendar(src, rdb, time.Minute, discard())

		_, err := c.MonthCalendar(ctx, "h-err", "r1", march)
		require.Error(t, err)
		exists, err := rdb.Exists(ctx, cache.CalendarKey("h-err", "r1", march)).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("fresh reads skip the cache and refresh it", func(t *testing.T) {
		src := &countingCalendar{days: []availability.Day{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Available: 3},
		}}
		c := cache.NewCalendar(src, rdb, time.Minute, discard())

		_, err := c.MonthCalendar(ctx, "h-fresh", "r1", march)
		require.NoError(t, err)

		src.days = []availability.Day{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Available: 1},
		}
		fresh, err := c.MonthCalendar(usecaseavail.WithFreshCalendar(ctx), "h-fresh", "r1", march)
		require.NoError(t, err)
		require.Len(t, fresh, 1)
		assert.Equal(t, 1, fresh[0].Available)
		assert.Equal(t, 2, src.calls)

		cached, err := c.MonthCalendar(ctx, "h-fresh", "r1", march)
		require.NoError(t, err)
		assert.Equal(t, 1, cached[0].Available)
		assert.Equal(t, 2, src.calls)
	})

	t.Run("entries expire", func(t *testing.T) {
		src := &countingCalendar{}
		c := cache.NewCalendar(src, rdb, time.Second, discard())

		_, err := c.MonthCalendar(ctx, "h-ttl", "r1", march)
		require.NoError(t, err)
		ttl, err := rdb.TTL(ctx, cache.CalendarKey("h-ttl", "r1", march)).Result()
		require.NoError(t, err)
		assert.LessOrEqual(t, ttl, time.Second)
	})
}

func TestRoomsCache(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	dates, err := stay.ParseDateRange("2025-03-10", "2025-03-12")
	require.NoError(t, err)

	src := &countingRooms{room: room.APIRoom{
		ID:      "r1",
		HotelID: "h1",
		Pricing: ratecard.Card{{ID: "p1", RoomCount: 1, AC: true, BasePrice: 1800}},
	}}
	c := cache.NewRooms(src, rdb, time.Minute, discard())
	q := bookingapi.RoomQuery{HotelID: "h1", RoomID: "r1", Dates: dates}

	_, err = c.RoomDetails(ctx, q)
	require.NoError(t, err)
	got, err := c.RoomDetails(ctx, q)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, src.room, got)
	assert.Equal(t, "room:h1:r1:2025-03-10:2025-03-12", cache.RoomKey(q))
}

func TestIdempotencyStore(t *testing.T) {
	rdb := startRedis(t)
	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	store := cache.NewIdempotencyStore(rdb, clk)

	rec := commands.IdempotencyRecord{
		Key:         "k1",
		UserID:      "u1",
		Status:      commands.IdempotencyProcessing,
		RequestHash: "abc",
		ExpiresAt:   clk.Now().Add(time.Hour),
	}

	existing, claimed, err := store.Claim(ctx, rec)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Nil(t, existing)

	existing, claimed, err = store.Claim(ctx, rec)
	require.NoError(t, err)
	assert.False(t, claimed)
	require.NotNil(t, existing)
	assert.Equal(t, commands.IdempotencyProcessing, existing.Status)

	rec.Status = commands.IdempotencyCompleted
	rec.PaymentURL = "https://pay/1"
	require.NoError(t, store.Complete(ctx, rec))

	existing, _, err = store.Claim(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "https://pay/1", existing.PaymentURL)

	require.NoError(t, store.Release(ctx, "u1", "k1"))
	_, claimed, err = store.Claim(ctx, rec)
	require.NoError(t, err)
	assert.True(t, claimed)
}
