package repo

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenCache keeps token -> subscriber id lookups in Redis. Tokens never change
// owner, so entries only expire to bound memory. A nil client disables caching.
type TokenCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.SugaredLogger
}

func NewTokenCache(rdb *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *TokenCache {
	return &TokenCache{rdb: rdb, ttl: ttl, log: logger}
}

func tokenKey(tok string) string { return "sub_token:" + tok }

// Get reports a miss for any Redis failure so callers fall back to the database.
func (c *TokenCache) Get(ctx context.Context, tok string) (uuid.UUID, bool) {
	if c == nil || c.rdb == nil {
		return uuid.Nil, false
	}
	str, err := c.rdb.Get(ctx, tokenKey(tok)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnw("token cache get", "error", err)
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		c.log.Warnw("token cache holds malformed id", "error", err)
		return uuid.Nil, false
	}
	return id, true
}

// Set writes through; failures are logged and otherwise ignored.
func (c *TokenCache) Set(ctx context.Context, tok string, id uuid.UUID) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, tokenKey(tok), id.String(), c.ttl).Err(); err != nil {
		c.log.Warnw("token cache set", "error", err)
	}
}
