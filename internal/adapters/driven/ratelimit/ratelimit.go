// Package ratelimit provides client-side throttling for external APIs.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Provider identifies an external API for rate limiting purposes.
type Provider string

const (
	// ProviderOpenAI covers chat and embedding requests to OpenAI.
	ProviderOpenAI Provider = "openai"
	// ProviderPinecone covers vector store requests.
	ProviderPinecone Provider = "pinecone"
	// ProviderMem0 covers client memory requests.
	ProviderMem0 Provider = "mem0"
)

// Config holds rate limiting configuration for a provider.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultLimits provides conservative defaults per provider, well below the
// published quotas so a busy studio never trips a 429 under normal load.
var DefaultLimits = map[Provider]Config{
	ProviderOpenAI:   {RequestsPerSecond: 5.0, BurstSize: 10},
	ProviderPinecone: {RequestsPerSecond: 10.0, BurstSize: 20},
	ProviderMem0:     {RequestsPerSecond: 5.0, BurstSize: 5},
}

// Limiter throttles requests to an external API. It combines a token bucket
// with a backoff window set when the API returns a rate limit error.
type Limiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
}

// New creates a limiter for the given provider using the default limits.
func New(provider Provider) *Limiter {
	cfg, ok := DefaultLimits[provider]
	if !ok {
		cfg = Config{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a limiter with custom configuration.
func NewWithConfig(cfg Config) *Limiter {
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit,
// honouring any backoff window recorded from an earlier 429.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return l.bucket.Wait(ctx)
}

// RecordRateLimitError sets a backoff window after a 429 response.
// retryAfterSeconds comes from the Retry-After header when present.
func (l *Limiter) RecordRateLimitError(retryAfterSeconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if retryAfterSeconds <= 0 {
		retryAfterSeconds = 30
	}
	l.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}

// Allow reports whether a request can be made immediately.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		return false
	}
	return l.bucket.Allow()
}
