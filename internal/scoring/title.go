package scoring

import "math"

const (
	titleMaxScore      = 10.0
	titleMissScore     = -5.0
	titleWeightFactor  = 1.5
	titleBoostStep     = 0.1
	titleBoostBaseline = 1.0
)

// TitleScore compares the candidate title tokens with the entry title tokens.
//
// Candidate tokens are weighted so that earlier tokens count more (each step towards
// the front multiplies the weight by 1.5) and the weights sum to 10. Every candidate
// token found in the entry adds its weight times a running boost that grows by 0.1 per
// consecutive hit and resets on a miss. The result is capped at 10; a title without a
// single hit scores -5.
func TitleScore(entryTokens, candidateTokens []string) float64 {
	if len(entryTokens) == 0 || len(candidateTokens) == 0 {
		return titleMissScore
	}

	positions := make(map[string]int, len(entryTokens))
	for i, token := range entryTokens {
		if _, ok := positions[token]; !ok {
			positions[token] = i
		}
	}

	weights := titleWeights(len(candidateTokens))
	total := 0.0
	boost := titleBoostBaseline

	for i, token := range candidateTokens {
		if entryIndexOf(positions, token) < 0 {
			boost = titleBoostBaseline
			continue
		}
		total += boost * weights[i]
		boost += titleBoostStep
	}

	if total <= 0 {
		return titleMissScore
	}
	return math.Min(total, titleMaxScore)
}

// titleWeights returns n weights with the last one lowest, scaled to sum to titleMaxScore
func titleWeights(n int) []float64 {
	weights := make([]float64, n)
	sum := 0.0
	w := 1.0
	for i := n - 1; i >= 0; i-- {
		weights[i] = w
		sum += w
		w *= titleWeightFactor
	}
	for i := range weights {
		weights[i] = weights[i] / sum * titleMaxScore
	}
	return weights
}

func entryIndexOf(positions map[string]int, token string) int {
	if i, ok := positions[token]; ok {
		return i
	}
	return -1
}
