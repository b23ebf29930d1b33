package scoring

import (
	"strings"

	"tophits/internal/models"
	"tophits/internal/textnorm"
)

// Block reasons
const (
	BlockReasonKaraoke      = "karaoke"
	BlockReasonInstrumental = "instrumental"
	BlockReasonLive         = "live"
)

// trigger is a set of phrases that share a key word. The trigger is ignored when the
// entry's own title contains the key word.
type trigger struct {
	key     string
	phrases []string
}

var blockTriggers = []trigger{
	{key: BlockReasonKaraoke, phrases: []string{"karaoke"}},
	{key: BlockReasonInstrumental, phrases: []string{"instrumental"}},
	{key: BlockReasonLive, phrases: []string{"live at", "live from", "live in", "live on", "live version", "live recording"}},
}

var remixTriggers = []trigger{
	{key: "remix", phrases: []string{"remix"}},
	{key: "megamix", phrases: []string{"megamix"}},
	{key: "reloaded", phrases: []string{"reloaded"}},
	{key: "dub", phrases: []string{"dub"}},
	{key: "new version", phrases: []string{"new version"}},
}

var radioEditPhrases = []string{"radio edit", "radioedit", "radio version", "radio mix"}

// Classification holds the tags the classifier puts on a candidate
type Classification struct {
	Blocked     bool   `json:"blocked"`
	BlockReason string `json:"block_reason,omitempty"`
	Live        bool   `json:"live"`
	Remix       bool   `json:"remix"`
	RadioEdit   bool   `json:"radio_edit"`
}

// Classifier tags candidates by comparing their normalized title and album with the entry title
type Classifier struct{}

// Classify tags a candidate for the given entry
func (Classifier) Classify(entry models.SourceEntry, candidate models.CandidateTrack) Classification {
	entryTitle := textnorm.Normalize(entry.Title)
	title := textnorm.Normalize(candidate.Title)
	titleAndAlbum := textnorm.Normalize(candidate.Title + " " + candidate.AlbumTitle)

	var c Classification
	if reason, ok := matchTrigger(blockTriggers, titleAndAlbum, entryTitle); ok {
		c.Blocked = true
		c.BlockReason = reason
	}

	c.Remix = isRemix(title, entryTitle)
	c.RadioEdit = !c.Remix && containsAny(title, radioEditPhrases)
	c.Live = textnorm.ContainsPhrase(title, "live") && !textnorm.ContainsPhrase(entryTitle, "live")

	return c
}

// IsBlocked reports whether the candidate must never be selected for the entry
func (c Classifier) IsBlocked(entry models.SourceEntry, candidate models.CandidateTrack) bool {
	return c.Classify(entry, candidate).Blocked
}

func isRemix(title, entryTitle string) bool {
	if _, ok := matchTrigger(remixTriggers, title, entryTitle); ok {
		return true
	}
	if textnorm.ContainsPhrase(entryTitle, "mix") {
		return false
	}
	tokens := strings.Fields(title)
	for i, token := range tokens {
		if token == "mix" && (i == 0 || tokens[i-1] != "radio") {
			return true
		}
	}
	return false
}

func matchTrigger(triggers []trigger, text, entryTitle string) (string, bool) {
	for _, t := range triggers {
		if textnorm.ContainsPhrase(entryTitle, t.key) {
			continue
		}
		if containsAny(text, t.phrases) {
			return t.key, true
		}
	}
	return "", false
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if textnorm.ContainsPhrase(text, phrase) {
			return true
		}
	}
	return false
}
