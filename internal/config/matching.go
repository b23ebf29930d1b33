package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"tophits/internal/search"
)

// EntryFix rewrites a chart entry the chart source publishes with a title or artist
// credit the catalog does not know
type EntryFix struct {
	Year         int      `toml:"year"`
	Title        string   `toml:"title"`
	Artists      []string `toml:"artists"`
	FixedTitle   string   `toml:"fixed_title"`
	FixedArtists []string `toml:"fixed_artists"`
}

// MatchingConfig holds the tunable tables used while matching entries
type MatchingConfig struct {
	ArtistAliases []search.ArtistAlias `toml:"artist_aliases"`
	EntryFixes    []EntryFix           `toml:"entry_fixes"`
}

// DefaultMatchingConfig returns the built-in tables
func DefaultMatchingConfig() *MatchingConfig {
	return &MatchingConfig{
		ArtistAliases: search.DefaultArtistAliases(),
		EntryFixes: []EntryFix{
			{
				Year:       2003,
				Title:      "Hie u jetzt - Right Here Right Now",
				Artists:    []string{"Mia Aegerter"},
				FixedTitle: "Hie u jetzt",
			},
		},
	}
}

// Aliases returns the alias table as used by the cascade and the scoring engine
func (m *MatchingConfig) Aliases() search.ArtistAliases {
	return search.ArtistAliases(m.ArtistAliases)
}

// LoadMatchingConfig loads the matching tables from path merged over the defaults. With an
// empty path the well-known locations are tried; no file at all yields the defaults.
func LoadMatchingConfig(path string) (*MatchingConfig, error) {
	cfg := DefaultMatchingConfig()

	if path != "" {
		fileCfg, err := loadMatchingConfigFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load matching config %s: %w", path, err)
		}
		if fileCfg == nil {
			return nil, fmt.Errorf("matching config %s does not exist", path)
		}
		mergeMatchingConfig(cfg, fileCfg)
		return cfg, nil
	}

	for _, p := range candidateMatchingConfigPaths() {
		fileCfg, err := loadMatchingConfigFromPath(p)
		if err != nil {
			slog.Warn("Ignoring unreadable matching config", "path", p, "error", err)
			continue
		}
		if fileCfg != nil {
			mergeMatchingConfig(cfg, fileCfg)
			slog.Info("Matching config loaded", "path", p)
			break
		}
	}
	return cfg, nil
}

func loadMatchingConfigFromPath(path string) (*MatchingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg MatchingConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeMatchingConfig puts file aliases ahead of the built-in ones so they take
// precedence, and adds file fixes after the built-in fixes
func mergeMatchingConfig(base, override *MatchingConfig) {
	if override == nil || base == nil {
		return
	}
	if len(override.ArtistAliases) > 0 {
		aliases := make([]search.ArtistAlias, 0, len(override.ArtistAliases)+len(base.ArtistAliases))
		aliases = append(aliases, override.ArtistAliases...)
		base.ArtistAliases = append(aliases, base.ArtistAliases...)
	}
	base.EntryFixes = append(base.EntryFixes, override.EntryFixes...)
}

// candidateMatchingConfigPaths returns common locations to auto-discover the matching config
func candidateMatchingConfigPaths() []string {
	paths := []string{
		"matching.toml",
		filepath.Join("config", "matching.toml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "tophits", "matching.toml"))
	}

	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", "tophits", "matching.toml"))
	}

	return paths
}
