package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	limiter := New(10, time.Second)

	assert.NotNil(t, limiter)
	assert.Equal(t, 10, limiter.requests)
	assert.Equal(t, time.Second, limiter.period)
}

func TestAllow(t *testing.T) {
	limiter := New(2, time.Second)

	assert.True(t, limiter.Allow())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestWait(t *testing.T) {
	limiter := New(100, time.Second)

	err := limiter.Wait(context.Background())
	assert.NoError(t, err)
}

func TestWait_ContextCancelled(t *testing.T) {
	limiter := New(1, time.Hour)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)
	assert.Error(t, err)
}

func TestSetLimit(t *testing.T) {
	limiter := New(1, time.Second)
	require.True(t, limiter.Allow())
	require.False(t, limiter.Allow())

	limiter.SetLimit(100, time.Second)

	assert.True(t, limiter.Allow())
}

func TestMetrics(t *testing.T) {
	limiter := New(1, time.Hour)

	limiter.Allow()
	limiter.Allow()

	metrics := limiter.Metrics()
	assert.Equal(t, int64(2), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.AllowedRequests)
	assert.Equal(t, int64(1), metrics.DeniedRequests)
}
