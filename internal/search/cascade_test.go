package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tophits/internal/models"
)

func queriesByTier(cascade []TierQuery) map[SearchTier]string {
	out := make(map[SearchTier]string, len(cascade))
	for _, q := range cascade {
		out[q.Tier] = q.Query
	}
	return out
}

func TestBuildCascade_TierOrder(t *testing.T) {
	cascade := BuildCascade(models.SourceEntry{Year: 2001, Title: "Lady", Artists: []string{"Modjo"}}, DefaultArtistAliases())

	require.Len(t, cascade, len(AllTiers))
	for i, q := range cascade {
		assert.Equal(t, AllTiers[i], q.Tier)
	}
}

func TestBuildCascade_Queries(t *testing.T) {
	entry := models.SourceEntry{Year: 2001, Title: "Lady", Artists: []string{"Modjo"}}

	queries := queriesByTier(BuildCascade(entry, DefaultArtistAliases()))

	assert.Equal(t, `track:"Lady" artist:"Modjo" year:2000-2001`, queries[TierExactMatch])
	assert.Equal(t, `track:"Lady" "Modjo" year:2000-2001`, queries[TierWithoutArtistTags])
	assert.Equal(t, `track:"Lady" artist:Modjo`, queries[TierWithoutYearTag])
	assert.Equal(t, `track:"Lady" "Modjo"`, queries[TierWithoutYearAndArtistTags])
	assert.Equal(t, `"Lady" "Modjo" year:2000-2001`, queries[TierWithoutTrackAndArtistTags])
	assert.Equal(t, `"Lady" "Modjo"`, queries[TierWithoutTags])
}

func TestBuildCascade_RelaxedTiersKeepTwoArtists(t *testing.T) {
	entry := models.SourceEntry{Year: 1999, Title: "Song", Artists: []string{"A", "B", "C"}}

	queries := queriesByTier(BuildCascade(entry, nil))

	assert.Equal(t, `track:"Song" artist:"A" artist:"B" artist:"C" year:1998-1999`, queries[TierExactMatch])
	assert.Equal(t, `track:"Song" artist:A artist:B`, queries[TierWithoutYearTag])
	assert.Equal(t, `track:"Song" "A" "B"`, queries[TierWithoutYearAndArtistTags])
	assert.Equal(t, `"Song" "A" "B" "C"`, queries[TierWithoutTags])
}

func TestBuildCascade_StripsNonASCII(t *testing.T) {
	entry := models.SourceEntry{Year: 2003, Title: "Ça plane pour moi", Artists: []string{"Beyoncé"}}

	queries := queriesByTier(BuildCascade(entry, nil))

	assert.Equal(t, `track:"Ca plane pour moi" artist:"Beyonce" year:2002-2003`, queries[TierExactMatch])
}

func TestBuildCascade_OmitsEmptyClauses(t *testing.T) {
	entry := models.SourceEntry{Title: "Instrumental Hit", Artists: []string{"  "}}

	queries := queriesByTier(BuildCascade(entry, nil))

	assert.Equal(t, `track:"Instrumental Hit"`, queries[TierExactMatch])
	assert.Equal(t, `"Instrumental Hit"`, queries[TierWithoutTags])
}

func TestBuildCascade_ArtistAlias(t *testing.T) {
	aliases := DefaultArtistAliases()

	early := queriesByTier(BuildCascade(models.SourceEntry{Year: 1990, Title: "Song", Artists: []string{"The Symbol"}}, aliases))
	assert.Equal(t, `track:"Song" artist:"Prince" year:1989-1990`, early[TierExactMatch])

	late := queriesByTier(BuildCascade(models.SourceEntry{Year: 2005, Title: "Song", Artists: []string{"The Symbol"}}, aliases))
	assert.Equal(t, `track:"Song" artist:"The Symbol" year:2004-2005`, late[TierExactMatch])
}

func TestArtistAliases_Apply(t *testing.T) {
	aliases := DefaultArtistAliases()

	assert.Equal(t, "Prince", aliases.Apply("THE SYMBOL", 1994))
	assert.Equal(t, "The Symbol", aliases.Apply("The Symbol", 1995))
	assert.Equal(t, "Star Academy I", aliases.Apply("Star Academy", 2002))
	assert.Equal(t, "Star Academy I", aliases.Apply("star academy 1", 2003))
	assert.Equal(t, "Star Academy III", aliases.Apply("STAR ACADEMY 3", 2004))
	assert.Equal(t, "Star Academy II", aliases.Apply("Star Academy II", 2003))
	assert.Equal(t, "Modjo", aliases.Apply("Modjo", 1990))
}

func TestArtistAliases_With(t *testing.T) {
	aliases := DefaultArtistAliases().With(ArtistAlias{Name: "Star Academy 2", LegalName: "Star Academy II"})

	assert.Equal(t, "Star Academy II", aliases.Apply("star academy 2", 2003))
	assert.Equal(t, "Modjo", aliases.Apply("Modjo", 1990))
	assert.Equal(t, []string{"Prince", "Modjo"}, aliases.ApplyAll([]string{"the symbol", "Modjo"}, 1990))
}

func TestSearchTier_String(t *testing.T) {
	assert.Equal(t, "EXACT_MATCH", TierExactMatch.String())
	assert.Equal(t, "MATCH_WITHOUT_TAGS", TierWithoutTags.String())
	assert.Equal(t, "UNKNOWN_TIER", SearchTier(42).String())
	assert.False(t, SearchTier(-1).Valid())
}
