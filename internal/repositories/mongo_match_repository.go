package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tophits/internal/models"
)

// mongoMatchRepository implements MatchRepository using MongoDB
type mongoMatchRepository struct {
	collection *mongo.Collection
}

// NewMongoMatchRepository creates a new MongoDB-backed match repository
func NewMongoMatchRepository(db *models.Database) MatchRepository {
	return &mongoMatchRepository{
		collection: db.DB.Collection(models.MatchRecordsCollection),
	}
}

func chartPositionFilter(year, position int) bson.M {
	return bson.M{"chart_year": year, "position": position}
}

// SaveResolution upserts the record keyed by chart year and position
func (r *mongoMatchRepository) SaveResolution(ctx context.Context, record *models.MatchRecord) error {
	now := time.Now()
	record.SchemaVersion = models.CurrentSchemaVersion
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	// _id and created_at survive re-resolution of the same position
	update := bson.M{
		"$set": bson.M{
			"schema_version": record.SchemaVersion,
			"entry":          record.Entry,
			"status":         record.Status,
			"track":          record.Track,
			"score":          record.Score,
			"diagnostics":    record.Diagnostics,
			"updated_at":     record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": record.CreatedAt,
		},
	}

	_, err := r.collection.UpdateOne(ctx,
		chartPositionFilter(record.ChartYear, record.Position),
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save match record %d/%d: %w", record.ChartYear, record.Position, err)
	}
	return nil
}

// FindByYear returns all records of a chart year ordered by position
func (r *mongoMatchRepository) FindByYear(ctx context.Context, year int) ([]*models.MatchRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"chart_year": year}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find match records for %d: %w", year, err)
	}
	defer cursor.Close(ctx)

	var records []*models.MatchRecord
	for cursor.Next(ctx) {
		var record models.MatchRecord
		if err := cursor.Decode(&record); err != nil {
			slog.Error("Failed to decode match record", "year", year, "error", err)
			continue
		}
		upgradeSchema(&record)
		records = append(records, &record)
	}

	return records, cursor.Err()
}

// FindByPosition returns the record of one chart position
func (r *mongoMatchRepository) FindByPosition(ctx context.Context, year, position int) (*models.MatchRecord, error) {
	var record models.MatchRecord
	err := r.collection.FindOne(ctx, chartPositionFilter(year, position)).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find match record %d/%d: %w", year, position, err)
	}

	upgradeSchema(&record)
	return &record, nil
}

// upgradeSchema brings records written by older versions up to date in memory
func upgradeSchema(record *models.MatchRecord) {
	if record.SchemaVersion >= models.CurrentSchemaVersion {
		return
	}

	switch record.SchemaVersion {
	case 0:
		// version 0 records had no status field
		if record.Status == "" {
			if record.Track != nil {
				record.Status = models.MatchStatusMatched
			} else {
				record.Status = models.MatchStatusNoMatch
			}
		}
		fallthrough
	default:
		record.SchemaVersion = models.CurrentSchemaVersion
	}
}
