package models

import (
	"strconv"
	"strings"
)

// CandidateTrack is a track returned by the catalog search
type CandidateTrack struct {
	ID          string   `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	ArtistNames []string `json:"artists" bson:"artists"`
	AlbumTitle  string   `json:"album" bson:"album"`
	ReleaseDate string   `json:"release_date" bson:"release_date"` // YYYY, YYYY-MM or YYYY-MM-DD
	Popularity  int      `json:"popularity" bson:"popularity"`     // 0-100
	DurationMs  int      `json:"duration_ms" bson:"duration_ms"`
	TrackNumber int      `json:"track_number" bson:"track_number"`
	URI         string   `json:"uri,omitempty" bson:"uri,omitempty"`
}

// ReleaseYear parses the year prefix of ReleaseDate
func (t CandidateTrack) ReleaseYear() (int, bool) {
	if len(t.ReleaseDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(t.ReleaseDate[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// ShortDesc renders the track as "Title [Artists], Album (release date)"
func (t CandidateTrack) ShortDesc() string {
	return t.Title + " [" + strings.Join(t.ArtistNames, ", ") + "], " + t.AlbumTitle + " (" + t.ReleaseDate + ")"
}
