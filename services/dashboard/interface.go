package dashboard

import (
	"context"
	"time"
)

// Cache stores serialised dashboard summaries.
//
//go:generate mockgen -destination=mocks/mock_cache.go -source=interface.go Cache
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Invalidator drops cached summaries after a committed write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// NopInvalidator is used when no cache is configured.
type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context) {}
