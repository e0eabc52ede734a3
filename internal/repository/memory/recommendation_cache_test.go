package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationCache(t *testing.T) {
	c := NewRecommendationCache()
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "s-1", []byte("payload"), 0))
	got, ok := c.Get(ctx, "s-1")
	require.True(t, ok)
	assert.Equal(t, "payload", string(got))

	require.NoError(t, c.Delete(ctx, "s-1"))
	_, ok = c.Get(ctx, "s-1")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "short", []byte("x"), time.Millisecond))
	time.Sleep(5 * time.Millisecond)
	_, ok = c.Get(ctx, "short")
	assert.False(t, ok)
}
