package scoring

import (
	"math"
	"sync"

	"tophits/internal/models"
)

// SentinelMinimum is the aggregate score of a blocked candidate. It sorts below every
// real score and never passes an acceptance threshold.
const SentinelMinimum = -math.MaxFloat64

// Dimension names one additive scoring component
type Dimension string

const (
	DimensionTitle       Dimension = "title"
	DimensionArtistCount Dimension = "artist_count"
	DimensionArtistNames Dimension = "artist_names"
	DimensionPopularity  Dimension = "popularity"
	DimensionPoolRank    Dimension = "pool_rank"
	DimensionDuration    Dimension = "duration"
	DimensionLive        Dimension = "live"
	DimensionRemix       Dimension = "remix"
	DimensionRadioEdit   Dimension = "radio_edit"
	DimensionReleaseDate Dimension = "release_date"
	DimensionTrackNumber Dimension = "track_number"
)

// Dimensions lists every scoring dimension in evaluation order
var Dimensions = []Dimension{
	DimensionTitle,
	DimensionArtistCount,
	DimensionArtistNames,
	DimensionPopularity,
	DimensionPoolRank,
	DimensionDuration,
	DimensionLive,
	DimensionRemix,
	DimensionRadioEdit,
	DimensionReleaseDate,
	DimensionTrackNumber,
}

// CandidateRating is the scored view of one pool candidate
type CandidateRating struct {
	Candidate      models.CandidateTrack
	Index          int // position in the merged pool
	Classification Classification

	scores map[Dimension]float64

	once      sync.Once
	aggregate float64
}

// Score returns the sum of all dimension scores, or SentinelMinimum for a blocked
// candidate. It is computed once and stable afterwards.
func (r *CandidateRating) Score() float64 {
	r.once.Do(func() {
		if r.Classification.Blocked {
			r.aggregate = SentinelMinimum
			return
		}
		total := 0.0
		for _, dim := range Dimensions {
			total += r.scores[dim]
		}
		r.aggregate = total
	})
	return r.aggregate
}

// Blocked reports whether the candidate was removed by the blocklist
func (r *CandidateRating) Blocked() bool {
	return r.Classification.Blocked
}

// Breakdown returns a copy of the per-dimension scores; empty for blocked candidates
func (r *CandidateRating) Breakdown() map[Dimension]float64 {
	out := make(map[Dimension]float64, len(r.scores))
	for dim, score := range r.scores {
		out[dim] = score
	}
	return out
}

// Dimension returns the score of a single dimension
func (r *CandidateRating) Dimension(dim Dimension) float64 {
	return r.scores[dim]
}

// ToScoredCandidate reduces the rating for storage and diagnostics output
func (r *CandidateRating) ToScoredCandidate() models.ScoredCandidate {
	return models.ScoredCandidate{
		TrackID: r.Candidate.ID,
		Desc:    r.Candidate.ShortDesc(),
		Score:   r.Score(),
		Blocked: r.Blocked(),
	}
}
