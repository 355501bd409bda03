package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// RateLimiter throttles outbound calls.
// It combines an optional token bucket with the server's Retry-After hint.
// It never retries; a hint only delays the next call, and never by more
// than the configured maximum.
type RateLimiter struct {
	mu         sync.Mutex
	bucket     *rate.Limiter // nil when proactive throttling is off
	maxHint    time.Duration // Retry-After cap; zero ignores hints
	blockUntil time.Time     // From Retry-After
	now        func() time.Time
}

// LimiterOption configures a RateLimiter.
type LimiterOption func(*RateLimiter)

// WithMaxRetryAfter honours Retry-After hints up to d.
// Longer hints are cut to d. Without this option hints are ignored.
func WithMaxRetryAfter(d time.Duration) LimiterOption {
	return func(r *RateLimiter) {
		if d > 0 {
			r.maxHint = d
		}
	}
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// Zero disables proactive throttling.
func NewRateLimiter(perSecond float64, opts ...LimiterOption) *RateLimiter {
	r := &RateLimiter{now: time.Now}
	if perSecond > 0 {
		r.bucket = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.bucket != nil {
		if err := r.bucket.Wait(ctx); err != nil {
			return err
		}
	}

	r.mu.Lock()
	blockUntil := r.blockUntil
	r.mu.Unlock()

	wait := blockUntil.Sub(r.now())
	if wait <= 0 {
		return nil
	}

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Observe records a Retry-After hint from a 429 or 503 response,
// capped at the configured maximum.
func (r *RateLimiter) Observe(resp *http.Response) {
	if resp == nil || r.maxHint <= 0 {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}
	retryAfter := resp.Header.Get(HeaderRetryAfter)
	if retryAfter == "" {
		return
	}

	now := r.now()
	var until time.Time
	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		until = now.Add(time.Duration(seconds) * time.Second)
	} else if at, err := http.ParseTime(retryAfter); err == nil {
		until = at
	} else {
		return
	}
	if limit := now.Add(r.maxHint); until.After(limit) {
		until = limit
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until.After(r.blockUntil) {
		r.blockUntil = until
	}
}
