package search

import "strings"

// ArtistAlias maps a name an artist used for a while to the name the catalog lists them under
type ArtistAlias struct {
	Name      string `toml:"name"`
	LegalName string `toml:"legal_name"`
	// MaxYear is the last chart year the alias applies to, 0 means always
	MaxYear int `toml:"max_year"`
}

// ArtistAliases is an ordered alias table; the first matching alias wins
type ArtistAliases []ArtistAlias

// DefaultArtistAliases returns the built-in alias table
func DefaultArtistAliases() ArtistAliases {
	return ArtistAliases{
		{Name: "the symbol", LegalName: "Prince", MaxYear: 1994},
		{Name: "star academy", LegalName: "Star Academy I"},
		{Name: "star academy 1", LegalName: "Star Academy I"},
		{Name: "star academy 3", LegalName: "Star Academy III"},
	}
}

// Apply returns the catalog name for artist in the given chart year
func (a ArtistAliases) Apply(artist string, year int) string {
	key := strings.TrimSpace(artist)
	for _, alias := range a {
		if alias.MaxYear != 0 && year > alias.MaxYear {
			continue
		}
		if strings.EqualFold(key, strings.TrimSpace(alias.Name)) {
			return alias.LegalName
		}
	}
	return artist
}

// ApplyAll applies the table to every artist, keeping order
func (a ArtistAliases) ApplyAll(artists []string, year int) []string {
	out := make([]string, len(artists))
	for i, artist := range artists {
		out[i] = a.Apply(artist, year)
	}
	return out
}

// With returns a new table holding a followed by extra
func (a ArtistAliases) With(extra ...ArtistAlias) ArtistAliases {
	out := make(ArtistAliases, 0, len(a)+len(extra))
	out = append(out, a...)
	return append(out, extra...)
}
