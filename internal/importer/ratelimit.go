package importer

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter paces requests to stay within the provider's documented
// 100-requests-per-15-minutes budget, and pauses until the
// window resets when the provider's response says the budget is spent.
type RateLimiter struct {
	limiter *rate.Limiter

	mu            sync.Mutex
	shortUsage    int
	shortLimit    int
	pausedUntil   time.Time
}

// NewRateLimiter builds a limiter averaging 100 requests per 15-minute
// window with a small burst allowance.
func NewRateLimiter() *RateLimiter {
	const window = 15 * time.Minute
	const budget = 100
	return &RateLimiter{
		limiter:    rate.NewLimiter(rate.Every(window/budget), 5),
		shortLimit: budget,
	}
}

// Wait blocks until a request may proceed, honoring both the steady-state
// token bucket and any provider-signaled pause.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	pauseUntil := r.pausedUntil
	r.mu.Unlock()

	if !pauseUntil.IsZero() {
		if wait := time.Until(pauseUntil); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return r.limiter.Wait(ctx)
}

// UpdateFromHeaders updates usage bookkeeping from the provider's rate
// limit headers (e.g. "X-RateLimit-Usage: 34,512").
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if usage := h.Get("X-RateLimit-Usage"); usage != "" {
		parts := strings.Split(usage, ",")
		if len(parts) >= 1 {
			if short, err := strconv.Atoi(parts[0]); err == nil {
				r.shortUsage = short
			}
		}
	}
}

// PauseUntilReset records a rate-limit (HTTP 429) response, pausing all
// subsequent Wait calls until resetAt.
func (r *RateLimiter) PauseUntilReset(resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pausedUntil = resetAt
}

// Usage returns the most recently observed short-window usage and limit.
func (r *RateLimiter) Usage() (usage, limit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shortUsage, r.shortLimit
}
