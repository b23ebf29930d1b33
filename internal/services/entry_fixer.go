package services

import (
	"strings"

	"tophits/internal/config"
	"tophits/internal/models"
)

// EntryFixer corrects chart entries that are published with a title or artist credit
// the catalog does not know
type EntryFixer struct {
	fixes []config.EntryFix
}

// NewEntryFixer creates a fixer applying the given fixes in order; the first match wins
func NewEntryFixer(fixes []config.EntryFix) *EntryFixer {
	return &EntryFixer{fixes: fixes}
}

// Fix returns the corrected entry and whether a fix was applied
func (f *EntryFixer) Fix(entry models.SourceEntry) (models.SourceEntry, bool) {
	for _, fix := range f.fixes {
		if !fixMatches(fix, entry) {
			continue
		}
		fixed := entry
		if fix.FixedTitle != "" {
			fixed.Title = fix.FixedTitle
		}
		if len(fix.FixedArtists) > 0 {
			fixed.Artists = append([]string(nil), fix.FixedArtists...)
		}
		return fixed, true
	}
	return entry, false
}

func fixMatches(fix config.EntryFix, entry models.SourceEntry) bool {
	if fix.Year != 0 && fix.Year != entry.Year {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(fix.Title), strings.TrimSpace(entry.Title)) {
		return false
	}
	if len(fix.Artists) == 0 {
		return true
	}
	if len(fix.Artists) != len(entry.Artists) {
		return false
	}
	for i, artist := range fix.Artists {
		if !strings.EqualFold(strings.TrimSpace(artist), strings.TrimSpace(entry.Artists[i])) {
			return false
		}
	}
	return true
}
