// Package resource provides admission control for the request path in front
// of a store: a request-rate limit and a cap on concurrent searches.
package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned by Admit when the request rate limit is exceeded.
var ErrRateLimited = errors.New("rate limit exceeded")

// Config holds admission limits. Zero values disable the respective limit.
type Config struct {
	// RequestsPerSecond is the sustained request rate admitted.
	// If 0, unlimited.
	RequestsPerSecond float64

	// Burst is the number of requests admitted above the sustained rate.
	// If 0, defaults to max(1, RequestsPerSecond).
	Burst int

	// MaxConcurrentSearches bounds searches scanning the store at once.
	// If 0, unlimited.
	MaxConcurrentSearches int64
}

// Controller enforces Config. A nil *Controller admits everything.
type Controller struct {
	cfg Config

	limiter  *rate.Limiter       // nil if unlimited
	searches *semaphore.Weighted // nil if unlimited

	inflight atomic.Int64
	rejected atomic.Int64
}

// NewController creates a new admission controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(1, int(cfg.RequestsPerSecond))
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	if cfg.MaxConcurrentSearches > 0 {
		c.searches = semaphore.NewWeighted(cfg.MaxConcurrentSearches)
	}

	return c
}

// Admit reports whether a request may proceed under the rate limit.
// It never blocks.
func (c *Controller) Admit() error {
	if c == nil || c.limiter == nil {
		return nil
	}
	if !c.limiter.Allow() {
		c.rejected.Add(1)
		return ErrRateLimited
	}
	return nil
}

// AcquireSearch reserves a search slot.
// Blocks until a slot is free or ctx is canceled.
func (c *Controller) AcquireSearch(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.searches != nil {
		if err := c.searches.Acquire(ctx, 1); err != nil {
			c.rejected.Add(1)
			return err
		}
	}
	c.inflight.Add(1)
	return nil
}

// TryAcquireSearch reserves a search slot without blocking.
func (c *Controller) TryAcquireSearch() bool {
	if c == nil {
		return true
	}
	if c.searches != nil && !c.searches.TryAcquire(1) {
		return false
	}
	c.inflight.Add(1)
	return true
}

// ReleaseSearch releases a slot reserved by AcquireSearch or TryAcquireSearch.
func (c *Controller) ReleaseSearch() {
	if c == nil {
		return
	}
	c.inflight.Add(-1)
	if c.searches != nil {
		c.searches.Release(1)
	}
}

// Stats is a snapshot of controller state.
type Stats struct {
	InflightSearches int64 `json:"inflight_searches"`
	Rejected         int64 `json:"rejected"`
}

// Stats returns a snapshot of controller state.
func (c *Controller) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		InflightSearches: c.inflight.Load(),
		Rejected:         c.rejected.Load(),
	}
}
