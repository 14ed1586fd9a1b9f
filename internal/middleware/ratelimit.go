package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/forgo/atrium/api/internal/model"
)

// RateLimitConfig holds rate limiter configuration. Zero values take
// the defaults noted per field.
type RateLimitConfig struct {
	Rate    int           // Requests refilled per window (default 100)
	Window  time.Duration // Refill window (default 1 minute)
	Burst   int           // Extra capacity above Rate (default 20)
	Cleanup time.Duration // How often stale buckets are evicted (default 5 minutes)
}

// RateLimiter is a token bucket limiter keyed by account id, falling
// back to client address for unauthenticated traffic. Buckets refill
// continuously in proportion to elapsed time.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	rate   int
	window time.Duration
	burst  int

	cleanup time.Duration
	done    chan struct{}
}

type bucket struct {
	tokens    int
	lastReset time.Time
}

// capacity is the most tokens a bucket can hold
func (rl *RateLimiter) capacity() int {
	return rl.rate + rl.burst
}

// NewRateLimiter creates a limiter and starts its eviction goroutine.
// Call Stop when the limiter is no longer needed.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	if cfg.Cleanup <= 0 {
		cfg.Cleanup = 5 * time.Minute
	}

	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    cfg.Rate,
		window:  cfg.Window,
		burst:   cfg.Burst,
		cleanup: cfg.Cleanup,
		done:    make(chan struct{}),
	}
	go rl.evictLoop()

	return rl
}

// Stop terminates the eviction goroutine
func (rl *RateLimiter) Stop() {
	close(rl.done)
}

// Allow consumes one token for key. It reports whether the request may
// proceed, how many tokens remain, and when the bucket next refills
// fully.
func (rl *RateLimiter) Allow(key string) (allowed bool, remaining int, resetTime time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	b, ok := rl.buckets[key]
	if !ok {
		// First request from this key opens a full bucket
		b = &bucket{tokens: rl.capacity() - 1, lastReset: now}
		rl.buckets[key] = b
		return true, b.tokens, now.Add(rl.window)
	}

	rl.refill(b, now)
	reset := b.lastReset.Add(rl.window)

	if b.tokens == 0 {
		return false, 0, reset
	}
	b.tokens--
	return true, b.tokens, reset
}

// refill credits tokens proportional to time elapsed since the last
// reset, capped at capacity. A full window restores the bucket
// completely.
func (rl *RateLimiter) refill(b *bucket, now time.Time) {
	elapsed := now.Sub(b.lastReset)
	if elapsed >= rl.window {
		b.tokens = rl.capacity()
		b.lastReset = now
		return
	}

	credit := int(float64(rl.rate) * (float64(elapsed) / float64(rl.window)))
	if credit == 0 {
		return
	}
	b.tokens = min(b.tokens+credit, rl.capacity())
	b.lastReset = now
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictStale()
		case <-rl.done:
			return
		}
	}
}

// evictStale drops buckets idle for more than two windows. They would
// refill completely on next use anyway.
func (rl *RateLimiter) evictStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-2 * rl.window)
	for key, b := range rl.buckets {
		if b.lastReset.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit returns a middleware enforcing the limiter and exposing
// the standard X-RateLimit-* headers on every response
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetUserID(r.Context())
			if key == "" {
				key = r.RemoteAddr
			}

			allowed, remaining, reset := limiter.Allow(key)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				retryAfter := max(int(time.Until(reset).Seconds()), 1)
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
