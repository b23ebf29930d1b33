package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores opaque byte values with an expiration. A missing key is
// reported as (nil, nil) by Get.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
	Health(ctx context.Context) error
}

// CacheError wraps a backend failure with the operation and key involved.
type CacheError struct {
	Operation string
	Key       string
	Err       error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Operation, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }
