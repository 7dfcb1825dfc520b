package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// AuthSessionStore keeps role lookups and revoked token hashes in Redis.
// A nil client turns every method into a cache miss, so callers fall back
// to the user repository and logout only clears the cookie.
type AuthSessionStore struct {
	client *redis.Client
}

func NewAuthSessionStore(client *redis.Client) *AuthSessionStore {
	return &AuthSessionStore{client: client}
}

// Enabled reports whether a Redis client backs the store.
func (s *AuthSessionStore) Enabled() bool {
	return s != nil && s.client != nil
}

// CachedRole returns the cached role for userID, if any.
func (s *AuthSessionStore) CachedRole(ctx context.Context, userID string) (string, bool, error) {
	if !s.Enabled() {
		return "", false, nil
	}
	role, err := s.client.Get(ctx, AuthCachePrefix+userID).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read auth cache: %w", err)
	}
	return role, true, nil
}

// CacheRole stores role for userID for AuthCacheTTL.
func (s *AuthSessionStore) CacheRole(ctx context.Context, userID, role string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Set(ctx, AuthCachePrefix+userID, role, AuthCacheTTL).Err()
}

// ForgetRole drops the cached role, forcing the next request to reload it.
func (s *AuthSessionStore) ForgetRole(ctx context.Context, userID string) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Del(ctx, AuthCachePrefix+userID).Err()
}

// Revoke blacklists a token hash until the token would have expired anyway.
func (s *AuthSessionStore) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	if !s.Enabled() {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, RevokedTokenPrefix+tokenHash, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenHash was revoked by logout.
func (s *AuthSessionStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	n, err := s.client.Exists(ctx, RevokedTokenPrefix+tokenHash).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
