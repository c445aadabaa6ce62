package middleware

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter keeps a token-bucket limiter per key. Keys are typically user
// IDs so one noisy user cannot starve the rest.
type RateLimiter struct {
	mu     sync.Mutex
	limit  rate.Limit
	burst  int
	limits map[string]*rate.Limiter
}

// NewRateLimiter creates a rate limiter handing out limit tokens per second
// with the given burst per key.
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		burst:  burst,
		limits: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow reports whether a request for the given key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Wait blocks until a request for the given key may proceed or the context
// is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context, key string) error {
	return rl.getLimiter(key).Wait(ctx)
}
