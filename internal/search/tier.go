package search

// SearchTier is one step of the query cascade. Lower values have higher priority and their
// results come first in the merged candidate pool.
type SearchTier int

const (
	TierExactMatch SearchTier = iota
	TierWithoutArtistTags
	TierWithoutYearTag
	TierWithoutYearAndArtistTags
	TierWithoutTrackAndArtistTags
	TierWithoutTags

	tierCount = int(TierWithoutTags) + 1
)

// AllTiers lists every tier in priority order
var AllTiers = []SearchTier{
	TierExactMatch,
	TierWithoutArtistTags,
	TierWithoutYearTag,
	TierWithoutYearAndArtistTags,
	TierWithoutTrackAndArtistTags,
	TierWithoutTags,
}

var tierNames = [tierCount]string{
	"EXACT_MATCH",
	"MATCH_WITHOUT_ARTIST_TAGS",
	"MATCH_WITHOUT_YEAR_TAG",
	"MATCH_WITHOUT_YEAR_AND_ARTIST_TAGS",
	"MATCH_WITHOUT_TRACK_AND_ARTIST_TAGS",
	"MATCH_WITHOUT_TAGS",
}

func (t SearchTier) String() string {
	if !t.Valid() {
		return "UNKNOWN_TIER"
	}
	return tierNames[t]
}

// Valid reports whether t is one of the defined tiers
func (t SearchTier) Valid() bool {
	return t >= 0 && int(t) < tierCount
}
