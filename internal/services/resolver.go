package services

import (
	"context"
	"fmt"
	"log/slog"

	"tophits/internal/config"
	"tophits/internal/models"
	"tophits/internal/repositories"
	"tophits/internal/scoring"
	"tophits/internal/search"
)

// ResolverOptions controls matching behaviour
type ResolverOptions struct {
	MinScore         float64
	ConcurrentTiers  bool
	NormalizeEntries bool
}

// ResolverOptionsFromConfig extracts the matching options from the application config
func ResolverOptionsFromConfig(cfg *config.Config) ResolverOptions {
	return ResolverOptions{
		MinScore:         cfg.MinScore,
		ConcurrentTiers:  cfg.ConcurrentTiers,
		NormalizeEntries: cfg.NormalizeEntries,
	}
}

// Resolution is the outcome of resolving one chart entry
type Resolution struct {
	// Entry is the chart entry as published
	Entry models.SourceEntry
	// Searched is the entry used for searching, differing from Entry when a fix applied
	Searched   models.SourceEntry
	Selection  scoring.Selection
	PoolSize   int
	TierCounts map[string]int
}

// Matched reports whether a track was accepted
func (r *Resolution) Matched() bool {
	return r.Selection.Matched()
}

// Track returns the accepted track, nil when there is none
func (r *Resolution) Track() *models.CandidateTrack {
	if !r.Matched() {
		return nil
	}
	track := r.Selection.Best.Candidate
	return &track
}

// Score returns the aggregate score of the accepted track, 0 when there is none
func (r *Resolution) Score() float64 {
	if !r.Matched() {
		return 0
	}
	return r.Selection.Best.Score()
}

// ToMatchRecord converts the resolution into its stored form
func (r *Resolution) ToMatchRecord() *models.MatchRecord {
	record := models.NewMatchRecord(r.Entry)
	if r.Matched() {
		record.SetMatch(r.Selection.Best.Candidate, r.Selection.Best.Score())
		return record
	}
	for _, rating := range r.Selection.Diagnostics {
		record.Diagnostics = append(record.Diagnostics, rating.ToScoredCandidate())
	}
	return record
}

// ChartResolution holds the resolutions of a chart in entry order
type ChartResolution struct {
	Year        int
	Resolutions []*Resolution
}

// MatchedCount returns the number of entries with an accepted track
func (c *ChartResolution) MatchedCount() int {
	count := 0
	for _, r := range c.Resolutions {
		if r.Matched() {
			count++
		}
	}
	return count
}

// Resolver finds the catalog track for chart entries
type Resolver struct {
	catalog search.CatalogSearchClient
	aliases search.ArtistAliases
	engine  *scoring.Engine
	fixer   *EntryFixer
	repo    repositories.MatchRepository
	opts    ResolverOptions
}

// NewResolver creates a resolver. repo may be nil, in which case outcomes are not stored.
func NewResolver(catalog search.CatalogSearchClient, matching *config.MatchingConfig, repo repositories.MatchRepository, opts ResolverOptions) *Resolver {
	if matching == nil {
		matching = config.DefaultMatchingConfig()
	}
	aliases := matching.Aliases()
	return &Resolver{
		catalog: catalog,
		aliases: aliases,
		engine:  scoring.NewEngine(aliases),
		fixer:   NewEntryFixer(matching.EntryFixes),
		repo:    repo,
		opts:    opts,
	}
}

// Resolve searches the catalog for one entry and selects the best candidate. A catalog
// failure other than "not found" aborts the entry and is returned.
func (r *Resolver) Resolve(ctx context.Context, entry models.SourceEntry) (*Resolution, error) {
	searched := entry
	if r.opts.NormalizeEntries {
		if fixed, ok := r.fixer.Fix(entry); ok {
			slog.Info("Entry fixed before search",
				"position", entry.Position,
				"from", entry.ShortDesc(),
				"to", fixed.ShortDesc())
			searched = fixed
		}
	}

	cascade := search.BuildCascade(searched, r.aliases)
	aggregator := search.NewAggregator(r.catalog, cascade, search.AggregatorOptions{Concurrent: r.opts.ConcurrentTiers})

	pool, err := aggregator.MergedPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve entry %d (%s): %w", entry.Position, entry.ShortDesc(), err)
	}

	ratings := r.engine.Rate(searched, pool)
	resolution := &Resolution{
		Entry:      entry,
		Searched:   searched,
		Selection:  scoring.Select(ratings, r.opts.MinScore),
		PoolSize:   len(pool),
		TierCounts: aggregator.Summary(),
	}

	r.logResolution(resolution)

	if r.repo != nil {
		if err := r.repo.SaveResolution(ctx, resolution.ToMatchRecord()); err != nil {
			return nil, fmt.Errorf("store resolution of entry %d: %w", entry.Position, err)
		}
	}

	return resolution, nil
}

// ResolveChart resolves every entry of a chart in order. The first failing entry aborts
// the chart.
func (r *Resolver) ResolveChart(ctx context.Context, chart models.ChartInfo) (*ChartResolution, error) {
	chart.Normalize()

	result := &ChartResolution{
		Year:        chart.Year,
		Resolutions: make([]*Resolution, 0, len(chart.Entries)),
	}

	for _, entry := range chart.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resolution, err := r.Resolve(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("chart %d: %w", chart.Year, err)
		}
		result.Resolutions = append(result.Resolutions, resolution)
	}

	slog.Info("Chart resolved",
		"year", chart.Year,
		"entries", len(result.Resolutions),
		"matched", result.MatchedCount())

	return result, nil
}

func (r *Resolver) logResolution(res *Resolution) {
	slog.Debug("Candidate pool built",
		"position", res.Entry.Position,
		"pool_size", res.PoolSize,
		"tiers", res.TierCounts)

	if res.Matched() {
		slog.Info("Entry resolved",
			"position", res.Entry.Position,
			"entry", res.Entry.ShortDesc(),
			"track_id", res.Selection.Best.Candidate.ID,
			"track", res.Selection.Best.Candidate.ShortDesc(),
			"score", res.Score())
		return
	}

	slog.Warn("No acceptable match",
		"position", res.Entry.Position,
		"entry", res.Entry.ShortDesc(),
		"pool_size", res.PoolSize,
		"min_score", r.opts.MinScore)
	for i, rating := range res.Selection.Diagnostics {
		slog.Debug("Candidate",
			"rank", i+1,
			"track_id", rating.Candidate.ID,
			"track", rating.Candidate.ShortDesc(),
			"score", rating.Score(),
			"blocked", rating.Blocked(),
			"breakdown", rating.Breakdown())
	}
}
