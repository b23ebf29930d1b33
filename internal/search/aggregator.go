package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"tophits/internal/models"
)

// ErrNotFound is returned by a CatalogSearchClient when a query has no results.
// The aggregator treats it as an empty tier; every other error is fatal.
var ErrNotFound = errors.New("catalog search returned no results")

// CatalogSearchClient runs a raw query against the music catalog
type CatalogSearchClient interface {
	Search(ctx context.Context, query string) ([]models.CandidateTrack, error)
}

// TierResult is the memoized outcome of one tier query
type TierResult struct {
	Tier     SearchTier
	Query    string
	Tracks   []models.CandidateTrack
	NotFound bool
	Err      error
}

// AggregatorOptions tunes how tiers are fetched
type AggregatorOptions struct {
	// Concurrent fetches all tiers in parallel before merging
	Concurrent bool
}

type tierCell struct {
	once   sync.Once
	done   atomic.Bool
	result TierResult
}

// Aggregator runs the tier queries for a single entry. Every tier hits the catalog at most
// once for the lifetime of the aggregator, also when requested from several goroutines.
type Aggregator struct {
	client  CatalogSearchClient
	queries [tierCount]string
	cells   [tierCount]tierCell
	opts    AggregatorOptions
}

// NewAggregator creates an aggregator for the given cascade
func NewAggregator(client CatalogSearchClient, cascade []TierQuery, opts AggregatorOptions) *Aggregator {
	a := &Aggregator{
		client: client,
		opts:   opts,
	}
	for _, q := range cascade {
		if q.Tier.Valid() {
			a.queries[q.Tier] = q.Query
		}
	}
	return a
}

// Tier returns the results of one tier, querying the catalog on first use
func (a *Aggregator) Tier(ctx context.Context, tier SearchTier) TierResult {
	if !tier.Valid() {
		return TierResult{Tier: tier, Err: fmt.Errorf("unknown search tier %d", int(tier))}
	}

	cell := &a.cells[tier]
	cell.once.Do(func() {
		cell.result = a.search(ctx, tier)
		cell.done.Store(true)
	})
	return cell.result
}

func (a *Aggregator) search(ctx context.Context, tier SearchTier) TierResult {
	result := TierResult{Tier: tier, Query: a.queries[tier]}

	tracks, err := a.client.Search(ctx, result.Query)
	switch {
	case errors.Is(err, ErrNotFound):
		result.NotFound = true
	case err != nil:
		result.Err = fmt.Errorf("search tier %s: %w", tier, err)
	default:
		result.Tracks = tracks
	}

	slog.Debug("Tier search completed",
		"tier", tier.String(),
		"query", result.Query,
		"tracks", len(result.Tracks),
		"not_found", result.NotFound,
		"error", result.Err)

	return result
}

// MergedPool concatenates all tiers in priority order, keeping only the first
// occurrence of every track ID. The first failed tier in priority order aborts the merge.
func (a *Aggregator) MergedPool(ctx context.Context) ([]models.CandidateTrack, error) {
	if a.opts.Concurrent {
		a.prefetch(ctx)
	}

	seen := make(map[string]struct{})
	pool := make([]models.CandidateTrack, 0)

	for _, tier := range AllTiers {
		result := a.Tier(ctx, tier)
		if result.Err != nil {
			return nil, result.Err
		}
		for _, track := range result.Tracks {
			if _, dup := seen[track.ID]; dup {
				continue
			}
			seen[track.ID] = struct{}{}
			pool = append(pool, track)
		}
	}

	return pool, nil
}

// prefetch resolves every tier in parallel. Failures stay in the tier cells and are
// reported by the merge in tier order.
func (a *Aggregator) prefetch(ctx context.Context) {
	var g errgroup.Group
	for _, tier := range AllTiers {
		g.Go(func() error {
			return a.Tier(ctx, tier).Err
		})
	}
	_ = g.Wait()
}

// Summary returns the track count of every tier fetched so far
func (a *Aggregator) Summary() map[string]int {
	summary := make(map[string]int)
	for _, tier := range AllTiers {
		cell := &a.cells[tier]
		if cell.done.Load() {
			summary[tier.String()] = len(cell.result.Tracks)
		}
	}
	return summary
}
