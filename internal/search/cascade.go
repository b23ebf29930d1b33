package search

import (
	"fmt"
	"strings"

	"tophits/internal/models"
	"tophits/internal/textnorm"
)

// maxRelaxedArtists is how many artists the relaxed artist tiers keep
const maxRelaxedArtists = 2

// TierQuery is the catalog query issued for one tier
type TierQuery struct {
	Tier  SearchTier
	Query string
}

// BuildCascade derives the six tier queries for an entry, from the most specific
// (field tags on title, every artist and year range) down to plain quoted terms.
func BuildCascade(entry models.SourceEntry, aliases ArtistAliases) []TierQuery {
	artists := nonBlank(aliases.ApplyAll(entry.Artists, entry.Year))
	year := yearClause(entry.Year)

	title := strings.TrimSpace(entry.Title)
	taggedTitle := fmt.Sprintf(`track:"%s"`, title)
	quotedTitle := fmt.Sprintf(`"%s"`, title)

	return []TierQuery{
		{TierExactMatch, joinClauses(taggedTitle, taggedArtists(artists, true), year)},
		{TierWithoutArtistTags, joinClauses(taggedTitle, quotedArtists(artists), year)},
		{TierWithoutYearTag, joinClauses(taggedTitle, taggedArtists(firstN(artists, maxRelaxedArtists), false))},
		{TierWithoutYearAndArtistTags, joinClauses(taggedTitle, quotedArtists(firstN(artists, maxRelaxedArtists)))},
		{TierWithoutTrackAndArtistTags, joinClauses(quotedTitle, quotedArtists(artists), year)},
		{TierWithoutTags, joinClauses(quotedTitle, quotedArtists(artists))},
	}
}

// yearClause covers the chart year and the year before
func yearClause(year int) string {
	if year <= 0 {
		return ""
	}
	return fmt.Sprintf("year:%d-%d", year-1, year)
}

func taggedArtists(artists []string, quoted bool) string {
	clauses := make([]string, 0, len(artists))
	for _, artist := range artists {
		if quoted {
			clauses = append(clauses, fmt.Sprintf(`artist:"%s"`, artist))
		} else {
			clauses = append(clauses, "artist:"+artist)
		}
	}
	return strings.Join(clauses, " ")
}

func quotedArtists(artists []string) string {
	clauses := make([]string, 0, len(artists))
	for _, artist := range artists {
		clauses = append(clauses, fmt.Sprintf(`"%s"`, artist))
	}
	return strings.Join(clauses, " ")
}

func joinClauses(clauses ...string) string {
	kept := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		if clause = strings.TrimSpace(clause); clause != "" {
			kept = append(kept, clause)
		}
	}
	return textnorm.StripNonASCII(strings.Join(kept, " "))
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
