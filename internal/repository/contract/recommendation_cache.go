package contract

import (
	"context"
	"time"
)

// RecommendationCache keeps the finalized recommendation JSON per session.
type RecommendationCache interface {
	Get(ctx context.Context, sessionId string) ([]byte, bool)
	Set(ctx context.Context, sessionId string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, sessionId string) error
}
