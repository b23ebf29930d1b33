package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleScore(t *testing.T) {
	tests := []struct {
		name      string
		entry     []string
		candidate []string
		want      float64
	}{
		{"single token match", []string{"lady"}, []string{"lady"}, 10},
		{"no overlap", []string{"hey", "ya"}, []string{"ms", "jackson"}, -5},
		{"empty candidate", []string{"hey"}, nil, -5},
		{"empty entry", nil, []string{"hey"}, -5},
		// weights 6 and 4, only the first token hits
		{"first of two", []string{"believe"}, []string{"believe", "remix"}, 6},
		// only the last token hits
		{"last of two", []string{"remix"}, []string{"believe", "remix"}, 4},
		// 6*1.0 + 4*1.1 exceeds the cap
		{"full match is capped", []string{"hey", "ya"}, []string{"hey", "ya"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TitleScore(tt.entry, tt.candidate), 1e-9)
		})
	}
}

func TestTitleScore_BoostResetsOnMiss(t *testing.T) {
	entry := []string{"a", "c"}
	// weights for three tokens: 4.7368, 3.1579, 2.1053; "b" misses so "c" gets boost 1.0
	got := TitleScore(entry, []string{"a", "b", "c"})
	assert.InDelta(t, 10*(2.25+1.0)/4.75, got, 1e-9)
}

func TestTitleWeights(t *testing.T) {
	weights := titleWeights(3)

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 10, sum, 1e-9)
	assert.InDelta(t, weights[2]*1.5, weights[1], 1e-9)
	assert.InDelta(t, weights[1]*1.5, weights[0], 1e-9)
}

func TestTitleScore_MonotonicWhenAppendingMatch(t *testing.T) {
	entry := []string{"lady", "hear", "me", "tonight", "radio", "edit"}
	prefixes := [][]string{
		{},
		{"lady"},
		{"karaoke"},
		{"lady", "version"},
		{"version", "one", "two"},
		{"lady", "hear"},
		{"x", "lady", "y", "z"},
	}
	matches := []string{"lady", "hear", "me", "tonight", "radio", "edit"}

	for _, prefix := range prefixes {
		before := TitleScore(entry, prefix)
		for _, m := range matches {
			if contains(prefix, m) {
				continue
			}
			extended := append(append([]string{}, prefix...), m)
			after := TitleScore(entry, extended)
			assert.GreaterOrEqual(t, after, before, "prefix %v + %q", prefix, m)
		}
	}
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}
