package scoring

import (
	"tophits/internal/models"
	"tophits/internal/search"
	"tophits/internal/textnorm"
)

// Engine rates every candidate of a merged pool against one entry
type Engine struct {
	aliases    search.ArtistAliases
	classifier Classifier
}

// NewEngine creates a scoring engine that resolves entry artists through aliases
func NewEngine(aliases search.ArtistAliases) *Engine {
	return &Engine{aliases: aliases}
}

// poolContext holds the figures a candidate is scored relative to
type poolContext struct {
	size          int
	maxPopularity int
	durations     []int
}

func newPoolContext(pool []models.CandidateTrack) poolContext {
	ctx := poolContext{size: len(pool), durations: make([]int, len(pool))}
	for i, track := range pool {
		if track.Popularity > ctx.maxPopularity {
			ctx.maxPopularity = track.Popularity
		}
		ctx.durations[i] = track.DurationMs
	}
	return ctx
}

// durationRank is the number of pool candidates strictly shorter than durationMs
func (p poolContext) durationRank(durationMs int) int {
	rank := 0
	for _, d := range p.durations {
		if d < durationMs {
			rank++
		}
	}
	return rank
}

type entryFeatures struct {
	entry        models.SourceEntry
	titleTokens  []string
	artistTokens []string
}

// Rate scores every candidate of the pool, in pool order
func (e *Engine) Rate(entry models.SourceEntry, pool []models.CandidateTrack) []*CandidateRating {
	features := entryFeatures{
		entry:        entry,
		titleTokens:  textnorm.Tokenize(entry.Title),
		artistTokens: textnorm.TokenizeAll(e.aliases.ApplyAll(entry.Artists, entry.Year)),
	}
	poolCtx := newPoolContext(pool)

	ratings := make([]*CandidateRating, len(pool))
	for i, candidate := range pool {
		rating := &CandidateRating{
			Candidate:      candidate,
			Index:          i,
			Classification: e.classifier.Classify(entry, candidate),
		}
		if !rating.Classification.Blocked {
			rating.scores = e.scoreDimensions(features, poolCtx, rating)
		}
		ratings[i] = rating
	}
	return ratings
}

func (e *Engine) scoreDimensions(f entryFeatures, pool poolContext, r *CandidateRating) map[Dimension]float64 {
	c := r.Candidate
	scores := make(map[Dimension]float64, len(Dimensions))

	scores[DimensionTitle] = TitleScore(f.titleTokens, textnorm.Tokenize(c.Title))
	if len(c.ArtistNames) == len(f.entry.Artists) {
		scores[DimensionArtistCount] = 2
	}
	scores[DimensionArtistNames] = artistNamesScore(f.artistTokens, textnorm.TokenizeAll(c.ArtistNames))
	if pool.maxPopularity > 0 {
		scores[DimensionPopularity] = float64(c.Popularity) * 5 / float64(pool.maxPopularity)
	}
	n := float64(pool.size)
	scores[DimensionPoolRank] = 5 * (n - float64(r.Index)) / n
	scores[DimensionDuration] = 2 * (n - float64(pool.durationRank(c.DurationMs))) / n
	if r.Classification.Live {
		scores[DimensionLive] = -2
	}
	if r.Classification.Remix {
		scores[DimensionRemix] = -2
	}
	if r.Classification.RadioEdit {
		scores[DimensionRadioEdit] = 2
	}
	scores[DimensionReleaseDate] = releaseDateScore(c, f.entry.Year)
	scores[DimensionTrackNumber] = trackNumberScore(c.TrackNumber)

	return scores
}

// artistNamesScore rewards candidates whose artist tokens cover the entry's
func artistNamesScore(entryTokens, candidateTokens []string) float64 {
	if len(entryTokens) == 0 {
		return -5
	}

	candidateSet := make(map[string]struct{}, len(candidateTokens))
	for _, token := range candidateTokens {
		candidateSet[token] = struct{}{}
	}
	entrySet := make(map[string]struct{}, len(entryTokens))
	found := 0
	for _, token := range entryTokens {
		entrySet[token] = struct{}{}
		if _, ok := candidateSet[token]; ok {
			found++
		}
	}

	allEntryFound := found == len(entryTokens)
	allCandidateFound := true
	for _, token := range candidateTokens {
		if _, ok := entrySet[token]; !ok {
			allCandidateFound = false
			break
		}
	}

	switch {
	case allEntryFound && allCandidateFound:
		return 10
	case allEntryFound:
		return 7
	case found > 0:
		return 5
	default:
		return -5
	}
}

// releaseDateScore compares the release year with the chart year. Releases in the
// chart year or the year before score best, older releases less, releases after the
// chart year or more than ten years off are penalized.
func releaseDateScore(c models.CandidateTrack, entryYear int) float64 {
	year, ok := c.ReleaseYear()
	if !ok {
		return 0
	}
	delta := year - entryYear
	switch {
	case delta == 0 || delta == -1:
		return 2
	case delta > -4 && delta < -1:
		return 1
	case delta > 1 || delta < -10:
		return -1
	default:
		return 0
	}
}

// trackNumberScore favours tracks near the start of their album
func trackNumberScore(trackNumber int) float64 {
	switch {
	case trackNumber <= 0:
		return 0
	case trackNumber <= 3:
		return 2
	case trackNumber <= 7:
		return 1
	default:
		return 0
	}
}
