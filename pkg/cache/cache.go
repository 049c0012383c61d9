// Package cache provides a small string cache abstraction used for
// short-lived derived data such as rendered dashboard summaries.
package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services.
//
// Get returns an empty string and a nil error when the key does not exist;
// a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop is a Cache that stores nothing. It is used when no cache backend is
// configured so callers never have to branch on a nil cache.
type Noop struct{}

// NewNoop creates a no-op cache.
func NewNoop() Cache { return Noop{} }

func (Noop) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (Noop) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, key string) error { return nil }
