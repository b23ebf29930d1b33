package testutil

import (
	"tophits/internal/models"
)

// TrackBuilder provides a fluent interface for creating candidate tracks
type TrackBuilder struct {
	track models.CandidateTrack
}

// NewTrackBuilder creates a new track builder with default values
func NewTrackBuilder(id string) *TrackBuilder {
	return &TrackBuilder{
		track: models.CandidateTrack{
			ID:          id,
			Title:       "Test Song",
			ArtistNames: []string{"Test Artist"},
			AlbumTitle:  "Test Album",
			ReleaseDate: "2001-01-01",
			Popularity:  50,
			DurationMs:  240000,
			TrackNumber: 1,
			URI:         "spotify:track:" + id,
		},
	}
}

// WithTitle sets the track title
func (b *TrackBuilder) WithTitle(title string) *TrackBuilder {
	b.track.Title = title
	return b
}

// WithArtists sets the track artists
func (b *TrackBuilder) WithArtists(artists ...string) *TrackBuilder {
	b.track.ArtistNames = artists
	return b
}

// WithAlbum sets the album title
func (b *TrackBuilder) WithAlbum(album string) *TrackBuilder {
	b.track.AlbumTitle = album
	return b
}

// WithReleaseDate sets the release date
func (b *TrackBuilder) WithReleaseDate(date string) *TrackBuilder {
	b.track.ReleaseDate = date
	return b
}

// WithPopularity sets the popularity score
func (b *TrackBuilder) WithPopularity(popularity int) *TrackBuilder {
	b.track.Popularity = popularity
	return b
}

// WithDuration sets the duration in milliseconds
func (b *TrackBuilder) WithDuration(durationMs int) *TrackBuilder {
	b.track.DurationMs = durationMs
	return b
}

// WithTrackNumber sets the album track number
func (b *TrackBuilder) WithTrackNumber(n int) *TrackBuilder {
	b.track.TrackNumber = n
	return b
}

// Build returns the constructed track
func (b *TrackBuilder) Build() models.CandidateTrack {
	return b.track
}

// LadyEntry is the number one of the 2001 chart
func LadyEntry() models.SourceEntry {
	return models.SourceEntry{Year: 2001, Position: 1, Title: "Lady (Hear Me Tonight)", Artists: []string{"Modjo"}}
}

// LadyTrack is the original recording of LadyEntry
func LadyTrack() models.CandidateTrack {
	return NewTrackBuilder("modjo").
		WithTitle("Lady (Hear Me Tonight)").
		WithArtists("Modjo").
		WithAlbum("Modjo").
		WithReleaseDate("2001-09-10").
		WithPopularity(70).
		WithDuration(307000).
		Build()
}

// LadyKaraokeTrack is a karaoke cover of LadyEntry that must never be selected
func LadyKaraokeTrack() models.CandidateTrack {
	return NewTrackBuilder("karaoke").
		WithTitle("Lady (Hear Me Tonight) - Karaoke Version").
		WithArtists("Party Hits Band").
		WithAlbum("Sing Along 2001").
		WithPopularity(20).
		WithDuration(300000).
		WithTrackNumber(5).
		Build()
}

// UnknownEntry is an entry no catalog knows
func UnknownEntry() models.SourceEntry {
	return models.SourceEntry{Year: 2001, Position: 2, Title: "Zzqx Unreleased", Artists: []string{"Nobody Known"}}
}

// SampleChart returns a two entry chart of 2001
func SampleChart() models.ChartInfo {
	lady := LadyEntry()
	unknown := UnknownEntry()
	lady.Year, unknown.Year = 0, 0
	return models.ChartInfo{Year: 2001, Entries: []models.SourceEntry{lady, unknown}}
}
