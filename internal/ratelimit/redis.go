package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps request timestamps in a Redis sorted set per
// identifier, scored by unix milliseconds. It exists so multi-instance
// deployments can share limiter state; the window algorithm is
// identical to MemoryStore.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Take implements Store.
func (s *RedisStore) Take(identifier string, now time.Time, max int, window time.Duration) (Result, error) {
	ctx := context.Background()
	key := "ratelimit:" + identifier
	nowMs := now.UnixMilli()
	windowStart := nowMs - window.Milliseconds()

	if err := s.client.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10)).Err(); err != nil {
		return Result{}, err
	}

	count, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return Result{}, err
	}

	if count >= int64(max) {
		oldest, err := s.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil {
			return Result{}, err
		}
		reset := now.Add(window)
		if len(oldest) > 0 {
			reset = time.UnixMilli(int64(oldest[0].Score) + window.Milliseconds())
		}
		return Result{Allowed: false, Remaining: 0, Reset: reset}, nil
	}

	if err := s.client.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: uuid.NewString()}).Err(); err != nil {
		return Result{}, err
	}
	if err := s.client.Expire(ctx, key, maxEntryAge).Err(); err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   true,
		Remaining: max - int(count) - 1,
		Reset:     now.Add(window),
	}, nil
}
