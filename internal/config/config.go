package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Spotify endpoints
const (
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"
	SpotifyAPIURL   = "https://api.spotify.com/v1"
)

// ErrMissingCredentials is returned by Validate when catalog credentials are not set
var ErrMissingCredentials = errors.New("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port     string `envconfig:"PORT" default:"8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Catalog access
	SpotifyClientID     string        `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string        `envconfig:"SPOTIFY_CLIENT_SECRET"`
	SpotifyMarket       string        `envconfig:"SPOTIFY_MARKET" default:"CH"`
	SpotifySearchLimit  int           `envconfig:"SPOTIFY_SEARCH_LIMIT" default:"20"`
	SpotifyTimeout      time.Duration `envconfig:"SPOTIFY_TIMEOUT" default:"10s"`

	// Matching
	MinScore           float64 `envconfig:"MATCH_MIN_SCORE" default:"22"`
	ConcurrentTiers    bool    `envconfig:"CONCURRENT_TIERS" default:"false"`
	NormalizeEntries   bool    `envconfig:"NORMALIZE_ENTRIES" default:"false"`
	MatchingConfigPath string  `envconfig:"MATCHING_CONFIG_PATH"`

	// Outputs
	DryRun    bool   `envconfig:"DRY_RUN" default:"true"`
	ReportDir string `envconfig:"REPORT_DIR" default:"matching-results"`

	// Optional infrastructure
	MongodbURL       string        `envconfig:"MONGODB_URL"`
	MongodbDatabase  string        `envconfig:"MONGODB_DATABASE" default:"tophits"`
	ValkeyURL        string        `envconfig:"VALKEY_URL"`
	SearchCacheTTL   time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"1h"`
	MemoryCacheItems int           `envconfig:"MEMORY_CACHE_ITEMS" default:"1000"`
}

// CatalogConfig is everything the catalog client needs
type CatalogConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	BaseURL      string
	Market       string
	SearchLimit  int
	Timeout      time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings needed to resolve entries against the catalog
func (c *Config) Validate() error {
	if c.SpotifyClientID == "" || c.SpotifyClientSecret == "" {
		return ErrMissingCredentials
	}
	if c.SpotifySearchLimit < 1 || c.SpotifySearchLimit > 50 {
		return fmt.Errorf("SPOTIFY_SEARCH_LIMIT must be between 1 and 50, got %d", c.SpotifySearchLimit)
	}
	if c.MemoryCacheItems < 1 {
		return fmt.Errorf("MEMORY_CACHE_ITEMS must be positive, got %d", c.MemoryCacheItems)
	}
	return nil
}

// Catalog returns the Spotify client settings
func (c *Config) Catalog() CatalogConfig {
	return CatalogConfig{
		ClientID:     c.SpotifyClientID,
		ClientSecret: c.SpotifyClientSecret,
		TokenURL:     SpotifyTokenURL,
		BaseURL:      SpotifyAPIURL,
		Market:       c.SpotifyMarket,
		SearchLimit:  c.SpotifySearchLimit,
		Timeout:      c.SpotifyTimeout,
	}
}

// SearchCacheNamespace identifies the catalog settings that shape a search response.
// Cached responses are only shared between runs with the same market and page size.
func (c *Config) SearchCacheNamespace() string {
	return c.SpotifyMarket + ":" + strconv.Itoa(c.SpotifySearchLimit)
}

// PersistenceEnabled reports whether outcomes are written to MongoDB
func (c *Config) PersistenceEnabled() bool {
	return !c.DryRun && c.MongodbURL != ""
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
