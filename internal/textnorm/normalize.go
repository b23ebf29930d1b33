// Package textnorm reduces titles and artist names to comparable ASCII token strings.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fillWords never carry meaning when comparing titles or artist credits
var fillWords = map[string]struct{}{
	"&":         {},
	"und":       {},
	"and":       {},
	"feat":      {},
	"feat.":     {},
	"featuring": {},
	"the":       {},
	"der":       {},
	"die":       {},
	"das":       {},
}

func newASCIIFolder() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
}

// StripNonASCII decomposes text (NFKD) and drops every non-ASCII rune, so "Café" becomes "Cafe".
// Case is preserved.
func StripNonASCII(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(newASCIIFolder(), text)
	if err != nil {
		return text
	}
	return out
}

// Normalize folds text to lowercase ASCII, drops fill words and punctuation and joins the
// remaining tokens with single spaces. Normalize is idempotent; the empty string maps to itself.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := strings.ToLower(StripNonASCII(text))
	fields := strings.Fields(folded)
	tokens := make([]string, 0, len(fields))

	for _, field := range fields {
		if isFillWord(field) {
			continue
		}
		token := stripNonAlphanumeric(field)
		// a stripped token like "and." must go as well, otherwise a second pass would drop it
		if token == "" || isFillWord(token) {
			continue
		}
		tokens = append(tokens, token)
	}

	return strings.Join(tokens, " ")
}

// Tokenize splits text on word boundaries, normalizes every piece and returns the distinct
// non-empty tokens in first-seen order.
func Tokenize(text string) []string {
	seen := make(map[string]struct{})
	var tokens []string

	for _, piece := range splitWords(text) {
		// a piece may still hold several tokens, e.g. a ligature folding to two letters
		for _, token := range strings.Fields(Normalize(piece)) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}

	return tokens
}

// TokenizeAll tokenizes every text and returns the distinct union in first-seen order
func TokenizeAll(texts []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, text := range texts {
		for _, token := range Tokenize(text) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// ContainsPhrase reports whether phrase occurs as whole words in the normalized text.
// Both arguments must already be normalized.
func ContainsPhrase(normalized, phrase string) bool {
	if normalized == "" || phrase == "" {
		return false
	}
	return strings.Contains(" "+normalized+" ", " "+phrase+" ")
}

func isFillWord(token string) bool {
	_, ok := fillWords[token]
	return ok
}

func stripNonAlphanumeric(token string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, token)
}

// splitWords cuts text into alternating runs of word and non-word runes
func splitWords(text string) []string {
	var pieces []string
	start := 0
	inWord := false

	for i, r := range text {
		word := isWordRune(r)
		if i > 0 && word != inWord {
			pieces = append(pieces, text[start:i])
			start = i
		}
		inWord = word
	}
	if start < len(text) {
		pieces = append(pieces, text[start:])
	}

	return pieces
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '_'
}
