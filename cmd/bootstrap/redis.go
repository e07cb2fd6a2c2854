package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"hotel-reservation/internal/infra/cache"
	"hotel-reservation/internal/pkg/config"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

// NewRedis returns nil when Redis is disabled; consumers then skip caching.
func NewRedis(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, caching off")
		return nil
	}

	rdb := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// an unreachable cache degrades to upstream calls, it does not stop startup
			if err := cache.Ping(ctx, rdb); err != nil {
				logger.Warn("redis unreachable at startup", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}
