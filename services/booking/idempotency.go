package booking

import (
	"context"
	"errors"

	"grambazaar/utils"

	"github.com/go-redis/redis/v8"
)

const idempotencyPending = "pending"

// RedisIdempotencyStore keeps booking idempotency keys in Redis under
// utils.IdempotencyPrefix. The value is "pending" until the booking exists.
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

func (s *RedisIdempotencyStore) Claim(ctx context.Context, key string) (string, bool, error) {
	ok, err := s.client.SetNX(ctx, utils.IdempotencyPrefix+key, idempotencyPending, utils.IdempotencyTTL).Result()
	if err != nil {
		return "", false, err
	}
	if ok {
		return "", true, nil
	}
	val, err := s.client.Get(ctx, utils.IdempotencyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; treat as in flight and let the client retry.
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if val == idempotencyPending {
		return "", false, nil
	}
	return val, false, nil
}

func (s *RedisIdempotencyStore) Complete(ctx context.Context, key, bookingID string) error {
	return s.client.Set(ctx, utils.IdempotencyPrefix+key, bookingID, utils.IdempotencyTTL).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, utils.IdempotencyPrefix+key).Err()
}
