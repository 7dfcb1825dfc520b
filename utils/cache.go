package utils

import (
	"context"
	"fmt"
	"time"

	"grambazaar/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (idempotency keys).
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for role caching and token revocation.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// InitCache connects both Redis clients. With no REDIS_ADDR configured it is a no-op
// and the getters return nil.
func InitCache() error {
	if config.AppConfig.RedisAddr == "" {
		return nil
	}
	var err error
	if CacheClient, err = newRedisClient(config.AppConfig.RedisCacheDB); err != nil {
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	if AuthCacheClient, err = newRedisClient(config.AppConfig.RedisAuthDB); err != nil {
		_ = CacheClient.Close()
		CacheClient = nil
		return fmt.Errorf("failed to connect to Redis (auth cache): %w", err)
	}
	return nil
}

// GetCacheClient returns the generic cache client, or nil when Redis is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// CloseCache closes any open Redis clients.
func CloseCache() {
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			_ = c.Close()
		}
	}
}
