package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "test-client-id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "test-client-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "CH", cfg.SpotifyMarket)
	assert.Equal(t, 20, cfg.SpotifySearchLimit)
	assert.Equal(t, 10*time.Second, cfg.SpotifyTimeout)
	assert.Equal(t, 22.0, cfg.MinScore)
	assert.False(t, cfg.ConcurrentTiers)
	assert.False(t, cfg.NormalizeEntries)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "matching-results", cfg.ReportDir)
	assert.Equal(t, time.Hour, cfg.SearchCacheTTL)
	assert.Equal(t, 1000, cfg.MemoryCacheItems)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPOTIFY_CLIENT_ID", "id")
	t.Setenv("SPOTIFY_CLIENT_SECRET", "secret")
	t.Setenv("SPOTIFY_MARKET", "DE")
	t.Setenv("MATCH_MIN_SCORE", "25.5")
	t.Setenv("CONCURRENT_TIERS", "true")
	t.Setenv("DRY_RUN", "false")
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("SEARCH_CACHE_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "DE", cfg.SpotifyMarket)
	assert.Equal(t, 25.5, cfg.MinScore)
	assert.True(t, cfg.ConcurrentTiers)
	assert.Equal(t, 30*time.Minute, cfg.SearchCacheTTL)
	assert.True(t, cfg.PersistenceEnabled())

	catalog := cfg.Catalog()
	assert.Equal(t, "id", catalog.ClientID)
	assert.Equal(t, "secret", catalog.ClientSecret)
	assert.Equal(t, SpotifyTokenURL, catalog.TokenURL)
	assert.Equal(t, SpotifyAPIURL, catalog.BaseURL)
	assert.Equal(t, "DE", catalog.Market)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("MATCH_MIN_SCORE", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{SpotifyClientID: "id", SpotifyClientSecret: "s", SpotifySearchLimit: 20, MemoryCacheItems: 10}, false},
		{"missing id", Config{SpotifyClientSecret: "s", SpotifySearchLimit: 20, MemoryCacheItems: 10}, true},
		{"missing secret", Config{SpotifyClientID: "id", SpotifySearchLimit: 20, MemoryCacheItems: 10}, true},
		{"limit too high", Config{SpotifyClientID: "id", SpotifyClientSecret: "s", SpotifySearchLimit: 51, MemoryCacheItems: 10}, true},
		{"no cache items", Config{SpotifyClientID: "id", SpotifyClientSecret: "s", SpotifySearchLimit: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, (&Config{}).Validate(), ErrMissingCredentials)
}

func TestConfig_PersistenceEnabled(t *testing.T) {
	assert.False(t, (&Config{DryRun: true, MongodbURL: "mongodb://x"}).PersistenceEnabled())
	assert.False(t, (&Config{DryRun: false}).PersistenceEnabled())
	assert.True(t, (&Config{DryRun: false, MongodbURL: "mongodb://x"}).PersistenceEnabled())
}

func TestConfig_SearchCacheNamespace(t *testing.T) {
	base := &Config{SpotifyMarket: "CH", SpotifySearchLimit: 20}
	assert.Equal(t, "CH:20", base.SearchCacheNamespace())

	assert.NotEqual(t, base.SearchCacheNamespace(), (&Config{SpotifyMarket: "CH", SpotifySearchLimit: 50}).SearchCacheNamespace())
	assert.NotEqual(t, base.SearchCacheNamespace(), (&Config{SpotifyMarket: "DE", SpotifySearchLimit: 20}).SearchCacheNamespace())
}

func TestConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "bogus"}).SlogLevel())
}

func TestLoadMatchingConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	cfg, err := LoadMatchingConfig("")
	require.NoError(t, err)

	assert.Equal(t, "Prince", cfg.Aliases().Apply("The Symbol", 1990))
	require.Len(t, cfg.EntryFixes, 1)
	assert.Equal(t, "Hie u jetzt", cfg.EntryFixes[0].FixedTitle)
}

func TestLoadMatchingConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matching.toml")
	content := `
[[artist_aliases]]
name = "Star Academy 3"
legal_name = "Star Academy III"

[[artist_aliases]]
name = "The Symbol"
legal_name = "TAFKAP"
max_year = 1992

[[entry_fixes]]
year = 2004
title = "Wrong Title"
artists = ["Someone"]
fixed_title = "Right Title"
fixed_artists = ["Someone", "Else"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadMatchingConfig(path)
	require.NoError(t, err)

	aliases := cfg.Aliases()
	assert.Equal(t, "Star Academy III", aliases.Apply("star academy 3", 2004))
	// file aliases win over the built-in ones
	assert.Equal(t, "TAFKAP", aliases.Apply("The Symbol", 1991))
	assert.Equal(t, "Prince", aliases.Apply("The Symbol", 1994))

	require.Len(t, cfg.EntryFixes, 2)
	assert.Equal(t, []string{"Someone", "Else"}, cfg.EntryFixes[1].FixedArtists)
}

func TestLoadMatchingConfig_Errors(t *testing.T) {
	_, err := LoadMatchingConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[artist_aliases]\nname = "), 0o644))
	_, err = LoadMatchingConfig(path)
	assert.Error(t, err)
}
