package utils

import "time"

// AuthCachePrefix is the prefix used for Redis role cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for role cache entries.
const AuthCacheTTL = 10 * time.Minute

// RevokedTokenPrefix marks token hashes invalidated by logout.
const RevokedTokenPrefix = "revoked:"

// IdempotencyPrefix namespaces booking idempotency keys.
const IdempotencyPrefix = "idem:booking:"

// IdempotencyTTL bounds how long a booking idempotency key is remembered.
const IdempotencyTTL = 24 * time.Hour

// TokenCookieName is the httpOnly cookie carrying the session JWT.
const TokenCookieName = "token"

// DefaultTokenTTL applies when TOKEN_TTL is not configured.
const DefaultTokenTTL = 7 * 24 * time.Hour
