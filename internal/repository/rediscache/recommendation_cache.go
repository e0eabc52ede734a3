package rediscache

import (
	"context"
	"errors"
	"time"

	"namdo-bot-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "namdo:recommendation:"

// RecommendationCache stores finalized recommendations in redis and falls back
// to the given cache whenever redis errors.
type RecommendationCache struct {
	rdb      *redis.Client
	fallback contract.RecommendationCache
}

var _ contract.RecommendationCache = (*RecommendationCache)(nil)

func NewRecommendationCache(rdb *redis.Client, fallback contract.RecommendationCache) *RecommendationCache {
	return &RecommendationCache{rdb: rdb, fallback: fallback}
}

func (c *RecommendationCache) Get(ctx context.Context, sessionId string) ([]byte, bool) {
	payload, err := c.rdb.Get(ctx, keyPrefix+sessionId).Bytes()
	if err == nil {
		return payload, true
	}
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	return c.fallback.Get(ctx, sessionId)
}

func (c *RecommendationCache) Set(ctx context.Context, sessionId string, payload []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, keyPrefix+sessionId, payload, ttl).Err(); err != nil {
		return c.fallback.Set(ctx, sessionId, payload, ttl)
	}
	return nil
}

func (c *RecommendationCache) Delete(ctx context.Context, sessionId string) error {
	_ = c.fallback.Delete(ctx, sessionId)
	return c.rdb.Del(ctx, keyPrefix+sessionId).Err()
}
