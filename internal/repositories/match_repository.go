package repositories

import (
	"context"

	"tophits/internal/models"
)

// MatchRepository stores resolution outcomes, one per chart year and position
type MatchRepository interface {
	// SaveResolution inserts or replaces the record for the record's chart year and position
	SaveResolution(ctx context.Context, record *models.MatchRecord) error

	// FindByYear returns all records of a chart year ordered by position
	FindByYear(ctx context.Context, year int) ([]*models.MatchRecord, error)

	// FindByPosition returns nil, nil when no record exists
	FindByPosition(ctx context.Context, year, position int) (*models.MatchRecord, error)
}
