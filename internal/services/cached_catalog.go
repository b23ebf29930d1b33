package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tophits/internal/cache"
	"tophits/internal/models"
	"tophits/internal/search"
)

// cachedSearch is the stored form of a catalog response
type cachedSearch struct {
	Tracks   []models.CandidateTrack `json:"tracks,omitempty"`
	NotFound bool                    `json:"not_found,omitempty"`
}

// CachedCatalogOptions controls how long responses are kept
type CachedCatalogOptions struct {
	// Namespace separates keys of catalog settings that change responses,
	// such as market and page size
	Namespace   string
	TTL         time.Duration
	NegativeTTL time.Duration
}

// CachedCatalogService stores catalog responses, empty ones included. Cache failures
// are logged and the catalog is queried directly.
type CachedCatalogService struct {
	next  CatalogService
	cache cache.Cache
	opts  CachedCatalogOptions
}

// NewCachedCatalogService wraps next with a response cache
func NewCachedCatalogService(next CatalogService, c cache.Cache, opts CachedCatalogOptions) *CachedCatalogService {
	if opts.NegativeTTL <= 0 {
		opts.NegativeTTL = opts.TTL
	}
	return &CachedCatalogService{next: next, cache: c, opts: opts}
}

// Name returns the wrapped catalog name
func (c *CachedCatalogService) Name() string {
	return c.next.Name()
}

// Health checks the wrapped catalog
func (c *CachedCatalogService) Health(ctx context.Context) error {
	return c.next.Health(ctx)
}

// Search answers from the cache when possible
func (c *CachedCatalogService) Search(ctx context.Context, query string) ([]models.CandidateTrack, error) {
	key := c.cacheKey(query)

	if entry, ok := c.lookup(ctx, key); ok {
		slog.Debug("Catalog cache hit", "query", query, "tracks", len(entry.Tracks), "not_found", entry.NotFound)
		if entry.NotFound {
			return nil, &PlatformError{
				Platform:  c.next.Name(),
				Operation: "search",
				Message:   "no tracks found (cached)",
				Query:     query,
				Err:       search.ErrNotFound,
			}
		}
		return entry.Tracks, nil
	}

	tracks, err := c.next.Search(ctx, query)
	switch {
	case errors.Is(err, search.ErrNotFound):
		c.store(ctx, key, cachedSearch{NotFound: true}, c.opts.NegativeTTL)
		return nil, err
	case err != nil:
		return nil, err
	}

	c.store(ctx, key, cachedSearch{Tracks: tracks}, c.opts.TTL)
	return tracks, nil
}

func (c *CachedCatalogService) lookup(ctx context.Context, key string) (cachedSearch, bool) {
	var entry cachedSearch

	data, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Catalog cache read failed", "key", key, "error", err)
		return entry, false
	}
	if data == nil {
		return entry, false
	}

	if err := json.Unmarshal(data, &entry); err != nil {
		slog.Warn("Dropping corrupt catalog cache entry", "key", key, "error", err)
		if err := c.cache.Delete(ctx, key); err != nil {
			slog.Warn("Failed to delete corrupt catalog cache entry", "key", key, "error", err)
		}
		return entry, false
	}
	return entry, true
}

func (c *CachedCatalogService) store(ctx context.Context, key string, entry cachedSearch, ttl time.Duration) {
	data, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("Failed to encode catalog cache entry", "key", key, "error", err)
		return
	}
	if err := c.cache.Set(ctx, key, data, ttl); err != nil {
		slog.Warn("Catalog cache write failed", "key", key, "error", err)
	}
}

func (c *CachedCatalogService) cacheKey(query string) string {
	sum := sha256.Sum256([]byte(query))
	return "search:" + c.next.Name() + ":" + c.opts.Namespace + ":" + hex.EncodeToString(sum[:16])
}
