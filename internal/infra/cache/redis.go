package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"hotel-reservation/internal/pkg/config"
	"hotel-reservation/internal/pkg/errs"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Ping(ctx context.Context, rdb redis.Cmdable) error {
	if err := rdb.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "redis ping")
	}
	return nil
}

// getJSON reports hit=false on a missing key.
func getJSON(ctx context.Context, rdb redis.Cmdable, key string, target any) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrapf(err, "redis get %s", key)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return false, errs.Wrapf(err, "decode cached %s", key)
	}
	return true, nil
}

func setJSON(ctx context.Context, rdb redis.Cmdable, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errs.Wrapf(err, "encode %s", key)
	}
	if err := rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return errs.Wrapf(err, "redis set %s", key)
	}
	return nil
}
