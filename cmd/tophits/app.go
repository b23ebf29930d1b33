package main

import (
	"context"
	"fmt"
	"log/slog"

	"tophits/internal/cache"
	"tophits/internal/config"
	"tophits/internal/handlers"
	"tophits/internal/models"
	"tophits/internal/repositories"
	"tophits/internal/services"
)

const valkeyKeyPrefix = "tophits:"

// application holds the wired collaborators shared by the subcommands
type application struct {
	cfg      *config.Config
	catalog  services.CatalogService
	cache    cache.Cache
	db       *models.Database
	matches  repositories.MatchRepository
	resolver *services.Resolver
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	matching, err := config.LoadMatchingConfig(cfg.MatchingConfigPath)
	if err != nil {
		return nil, err
	}

	app := &application{cfg: cfg}

	app.cache, err = newSearchCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app.catalog = services.NewCachedCatalogService(
		services.NewSpotifyService(cfg.Catalog()),
		app.cache,
		services.CachedCatalogOptions{
			Namespace: cfg.SearchCacheNamespace(),
			TTL:       cfg.SearchCacheTTL,
		},
	)

	if cfg.PersistenceEnabled() {
		app.db, err = models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongodbDatabase)
		if err != nil {
			app.Close(ctx)
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := app.db.CreateIndexes(ctx); err != nil {
			app.Close(ctx)
			return nil, fmt.Errorf("failed to create indexes: %w", err)
		}
		app.matches = repositories.NewMongoMatchRepository(app.db)
		slog.Info("Match storage enabled", "database", cfg.MongodbDatabase)
	} else {
		slog.Info("Match storage disabled", "dry_run", cfg.DryRun)
	}

	app.resolver = services.NewResolver(app.catalog, matching, app.matches, services.ResolverOptionsFromConfig(cfg))

	slog.Info("Resolver ready",
		"aliases", len(matching.ArtistAliases),
		"entry_fixes", len(matching.EntryFixes),
		"min_score", cfg.MinScore,
		"concurrent_tiers", cfg.ConcurrentTiers,
		"normalize_entries", cfg.NormalizeEntries)

	return app, nil
}

// newSearchCache returns the in-process LRU, layered over Valkey when VALKEY_URL is set
func newSearchCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	memory := cache.NewMemoryCache(cfg.MemoryCacheItems)
	if cfg.ValkeyURL == "" {
		return memory, nil
	}

	shared, err := cache.NewValkeyCache(ctx, cfg.ValkeyURL, valkeyKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	slog.Info("Search cache backed by Valkey")
	return cache.NewLayeredCache(memory, shared, cfg.SearchCacheTTL), nil
}

func (a *application) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"catalog": a.catalog.Health,
		"cache":   a.cache.Health,
	}
	if a.db != nil {
		checks["database"] = a.db.Ping
	}
	return checks
}

// Close releases the cache and database connections
func (a *application) Close(ctx context.Context) {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			slog.Warn("Failed to close cache", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(ctx); err != nil {
			slog.Warn("Failed to close database", "error", err)
		}
	}
}
