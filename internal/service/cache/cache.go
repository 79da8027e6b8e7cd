// Package cache defines the quote cache and token store contracts and their
// Redis-backed implementations.
package cache

import (
	"context"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
)

// Cache stores computed quotes by key. Implementations treat backend
// failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) (model.QuoteResult, bool)
	Set(ctx context.Context, key string, value model.QuoteResult)
	Invalidate(ctx context.Context, key string)
	Clear(ctx context.Context)
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}

// TokenStore keeps short-lived markers keyed by token ID: revoked access
// tokens and live refresh tokens.
type TokenStore interface {
	// Put stores key until ttl elapses.
	Put(ctx context.Context, key string, ttl time.Duration) error
	// Exists reports whether key is stored and not expired.
	Exists(ctx context.Context, key string) (bool, error)
	// Take removes key and reports whether it was present.
	Take(ctx context.Context, key string) (bool, error)
}

// StoredResponse is a replayable HTTP response kept for an Idempotency-Key.
type StoredResponse struct {
	// Fingerprint identifies the request body the response was produced for.
	Fingerprint string `json:"fingerprint"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ResponseStore keeps stored responses by key. Implementations treat backend
// failures as misses.
type ResponseStore interface {
	Load(ctx context.Context, key string) (*StoredResponse, bool)
	Save(ctx context.Context, key string, resp *StoredResponse, ttl time.Duration)
}
