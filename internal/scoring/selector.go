package scoring

import "sort"

// DefaultMinScore is the aggregate score a candidate needs to be accepted
const DefaultMinScore = 22.0

const diagnosticsLimit = 5

// Selection is the outcome of choosing among rated candidates
type Selection struct {
	// Best is the accepted candidate, nil when nothing reached the threshold
	Best *CandidateRating
	// Diagnostics holds the top candidates by raw score when Best is nil
	Diagnostics []*CandidateRating
}

// Matched reports whether a candidate was accepted
func (s Selection) Matched() bool {
	return s.Best != nil
}

// Select returns the highest rated candidate scoring at least minScore. Blocked
// candidates are never selected. Ties keep pool order.
func Select(ratings []*CandidateRating, minScore float64) Selection {
	sorted := make([]*CandidateRating, len(ratings))
	copy(sorted, ratings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score() > sorted[j].Score()
	})

	for _, r := range sorted {
		if r.Blocked() {
			continue
		}
		if r.Score() >= minScore {
			return Selection{Best: r}
		}
		break
	}

	limit := diagnosticsLimit
	if len(sorted) < limit {
		limit = len(sorted)
	}
	return Selection{Diagnostics: sorted[:limit]}
}
