package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// LayeredCache reads through a fast local layer in front of a shared one. Values found
// only in the shared layer are copied to the local layer for frontTTL.
type LayeredCache struct {
	front    Cache
	back     Cache
	frontTTL time.Duration
}

// NewLayeredCache stacks front over back
func NewLayeredCache(front, back Cache, frontTTL time.Duration) *LayeredCache {
	return &LayeredCache{front: front, back: back, frontTTL: frontTTL}
}

// Get checks the front layer first, then the back layer
func (l *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if value, err := l.front.Get(ctx, key); err == nil && value != nil {
		return value, nil
	}

	value, err := l.back.Get(ctx, key)
	if err != nil || value == nil {
		return value, err
	}

	if err := l.front.Set(ctx, key, value, l.frontTTL); err != nil {
		slog.Debug("Failed to populate front cache layer", "key", key, "error", err)
	}
	return value, nil
}

// Set writes both layers; the front layer keeps the value at most frontTTL
func (l *LayeredCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	frontExpiration := l.frontTTL
	if expiration > 0 && expiration < frontExpiration {
		frontExpiration = expiration
	}
	return errors.Join(
		l.front.Set(ctx, key, value, frontExpiration),
		l.back.Set(ctx, key, value, expiration),
	)
}

// Delete removes the key from both layers
func (l *LayeredCache) Delete(ctx context.Context, key string) error {
	return errors.Join(l.front.Delete(ctx, key), l.back.Delete(ctx, key))
}

// Close closes both layers
func (l *LayeredCache) Close() error {
	return errors.Join(l.front.Close(), l.back.Close())
}

// Health reports the health of the shared layer
func (l *LayeredCache) Health(ctx context.Context) error {
	return l.back.Health(ctx)
}
