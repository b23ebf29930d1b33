package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CurrentSchemaVersion = 1

// Match statuses
const (
	MatchStatusMatched = "matched"
	MatchStatusNoMatch = "no_match"
)

// MatchRecord is the stored outcome of resolving one chart entry
type MatchRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchemaVersion int                `bson:"schema_version" json:"schema_version"`

	ChartYear int         `bson:"chart_year" json:"chart_year"`
	Position  int         `bson:"position" json:"position"`
	Entry     SourceEntry `bson:"entry" json:"entry"`

	Status string          `bson:"status" json:"status"`
	Track  *CandidateTrack `bson:"track,omitempty" json:"track,omitempty"`
	Score  float64         `bson:"score" json:"score"`

	// Best-scoring candidates kept for manual review when nothing qualified
	Diagnostics []ScoredCandidate `bson:"diagnostics,omitempty" json:"diagnostics,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ScoredCandidate is a candidate reduced to what a reviewer needs
type ScoredCandidate struct {
	TrackID string  `bson:"track_id" json:"track_id"`
	Desc    string  `bson:"desc" json:"desc"`
	Score   float64 `bson:"score" json:"score"`
	Blocked bool    `bson:"blocked,omitempty" json:"blocked,omitempty"`
}

// NewMatchRecord creates a record for the given entry with no match yet
func NewMatchRecord(entry SourceEntry) *MatchRecord {
	now := time.Now()
	return &MatchRecord{
		SchemaVersion: CurrentSchemaVersion,
		ChartYear:     entry.Year,
		Position:      entry.Position,
		Entry:         entry,
		Status:        MatchStatusNoMatch,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetMatch records the accepted track and its score
func (r *MatchRecord) SetMatch(track CandidateTrack, score float64) {
	r.Status = MatchStatusMatched
	r.Track = &track
	r.Score = score
	r.Diagnostics = nil
	r.UpdatedAt = time.Now()
}

// IsMatched reports whether a track was accepted for the entry
func (r *MatchRecord) IsMatched() bool {
	return r.Status == MatchStatusMatched && r.Track != nil
}
