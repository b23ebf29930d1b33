package models

import "strings"

// SourceEntry is a single chart position as published by the chart source
type SourceEntry struct {
	Year     int      `json:"year" bson:"year"`
	Position int      `json:"position" bson:"position"`
	Title    string   `json:"title" bson:"title"`
	Artists  []string `json:"artists" bson:"artists"`
	LocalAct bool     `json:"local_act,omitempty" bson:"local_act"`
}

// ShortDesc renders the entry as "Title [Artist A, Artist B]", flagging local acts
func (e SourceEntry) ShortDesc() string {
	desc := e.Title + " [" + strings.Join(e.Artists, ", ") + "]"
	if e.LocalAct {
		desc += " [CH]"
	}
	return desc
}

// ChartInfo holds all entries of one yearly chart
type ChartInfo struct {
	Year    int           `json:"year"`
	Entries []SourceEntry `json:"entries"`
}

// Normalize fills in entry years missing from the chart file
func (c *ChartInfo) Normalize() {
	for i := range c.Entries {
		if c.Entries[i].Year == 0 {
			c.Entries[i].Year = c.Year
		}
	}
}
