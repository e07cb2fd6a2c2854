package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"hotel-reservation/internal/pkg/clock"
	"hotel-reservation/internal/pkg/errs"
	"hotel-reservation/internal/usecase/commands"
)

const claimAttempts = 2

// IdempotencyStore keeps submission records in Redis until they expire.
type IdempotencyStore struct {
	rdb   redis.Cmdable
	clock clock.Clock
}

func NewIdempotencyStore(rdb redis.Cmdable, clk clock.Clock) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, clock: clk}
}

func IdempotencyKey(userID, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", userID, key)
}

func (s *IdempotencyStore) Claim(ctx context.Context, rec commands.IdempotencyRecord) (*commands.IdempotencyRecord, bool, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, false, errs.Wrap(err, "encode idempotency record")
	}

	redisKey := IdempotencyKey(rec.UserID, rec.Key)
	for range claimAttempts {
		ok, err := s.rdb.SetNX(ctx, redisKey, raw, s.ttl(rec.ExpiresAt)).Result()
		if err != nil {
			return nil, false, errs.Wrapf(err, "claim %s", redisKey)
		}
		if ok {
			return nil, true, nil
		}

		var existing commands.IdempotencyRecord
		hit, err := getJSON(ctx, s.rdb, redisKey, &existing)
		if err != nil {
			return nil, false, err
		}
		if hit {
			return &existing, false, nil
		}
		// expired between SETNX and GET; claim again
	}
	return nil, false, errs.New("claim " + redisKey + ": key kept expiring")
}

func (s *IdempotencyStore) Complete(ctx context.Context, rec commands.IdempotencyRecord) error {
	return setJSON(ctx, s.rdb, IdempotencyKey(rec.UserID, rec.Key), rec, s.ttl(rec.ExpiresAt))
}

func (s *IdempotencyStore) Release(ctx context.Context, userID, key string) error {
	if err := s.rdb.Del(ctx, IdempotencyKey(userID, key)).Err(); err != nil {
		return errs.Wrapf(err, "release %s", IdempotencyKey(userID, key))
	}
	return nil
}

func (s *IdempotencyStore) ttl(expiresAt time.Time) time.Duration {
	return max(expiresAt.Sub(s.clock.Now()), time.Second)
}
