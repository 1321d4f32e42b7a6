package crawler

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces out request starts by a fixed delay. A single crawl
// targets a single domain, so one limiter covers the whole run; the first
// Wait passes immediately and every later Wait blocks until the delay
// since the previous request start has elapsed.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter for the given inter-request delay.
// A non-positive delay disables throttling.
func NewRateLimiter(delay time.Duration) *RateLimiter {
	if delay <= 0 {
		return &RateLimiter{}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next request may start or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.limiter == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}
