package memory

import (
	"context"
	"time"

	"namdo-bot-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type RecommendationCache struct {
	cache *cache.Cache
}

var _ contract.RecommendationCache = (*RecommendationCache)(nil)

func NewRecommendationCache() *RecommendationCache {
	// 1 hour default expiry, purge every 10 minutes
	return &RecommendationCache{
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (r *RecommendationCache) Get(_ context.Context, sessionId string) ([]byte, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.([]byte), true
	}
	return nil, false
}

func (r *RecommendationCache) Set(_ context.Context, sessionId string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	r.cache.Set(sessionId, payload, ttl)
	return nil
}

func (r *RecommendationCache) Delete(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
