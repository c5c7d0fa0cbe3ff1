package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Searches(t *testing.T) {
	c := NewController(Config{MaxConcurrentSearches: 2})

	require.NoError(t, c.AcquireSearch(context.Background()))
	require.NoError(t, c.AcquireSearch(context.Background()))
	assert.Equal(t, int64(2), c.Stats().InflightSearches)

	// TryAcquire should fail.
	assert.False(t, c.TryAcquireSearch())

	// Acquire should block until the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := c.AcquireSearch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(1), c.Stats().Rejected)

	c.ReleaseSearch()
	assert.True(t, c.TryAcquireSearch())

	c.ReleaseSearch()
	c.ReleaseSearch()
	assert.Equal(t, int64(0), c.Stats().InflightSearches)
}

func TestController_RateLimit(t *testing.T) {
	c := NewController(Config{RequestsPerSecond: 1, Burst: 2})

	require.NoError(t, c.Admit())
	require.NoError(t, c.Admit())
	assert.ErrorIs(t, c.Admit(), ErrRateLimited)
	assert.Equal(t, int64(1), c.Stats().Rejected)
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})

	for range 100 {
		require.NoError(t, c.Admit())
		require.NoError(t, c.AcquireSearch(context.Background()))
	}
	assert.Equal(t, int64(100), c.Stats().InflightSearches)
	for range 100 {
		c.ReleaseSearch()
	}
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.Admit())
	assert.NoError(t, c.AcquireSearch(context.Background()))
	assert.True(t, c.TryAcquireSearch())
	c.ReleaseSearch()
	assert.Equal(t, Stats{}, c.Stats())
}
