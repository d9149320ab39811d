// Package ratelimiter throttles outbound API calls with a token bucket.
package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

type RateLimiter interface {
	TakeToken() bool
	Wait(ctx context.Context) error
}

// TokenBucket refills at refillRate tokens per second up to capacity.
type TokenBucket struct {
	limiter *rate.Limiter
}

func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	// Ensure positive values to prevent issues
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}

	return &TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(refillRate), int(capacity)),
	}
}

// TakeToken consumes a token if one is available without blocking.
func (tb *TokenBucket) TakeToken() bool {
	return tb.limiter.Allow()
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return tb.limiter.Wait(ctx)
}
