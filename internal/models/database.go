package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MatchRecordsCollection is the collection holding resolution outcomes
const MatchRecordsCollection = "match_records"

const chartPositionIndex = "chart_year_1_position_1"

// Database holds the Mongo client and the database match records live in
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase connects to mongoURL and verifies the server answers a ping
func NewDatabase(ctx context.Context, mongoURL, dbName string) (*Database, error) {
	opts := options.Client().ApplyURI(mongoURL).
		SetMaxPoolSize(10).
		SetMinPoolSize(1).
		SetMaxConnIdleTime(30 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Database{Client: client, DB: client.Database(dbName)}, nil
}

func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

func (d *Database) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, nil)
}

// CreateIndexes creates the indexes used by the match repository
func (d *Database) CreateIndexes(ctx context.Context) error {
	indexView := d.DB.Collection(MatchRecordsCollection).Indexes()

	if err := dropNonUniquePositionIndex(ctx, indexView); err != nil {
		return err
	}

	_, err := indexView.CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "chart_year", Value: 1}, {Key: "position", Value: 1}},
			Options: options.Index().SetName(chartPositionIndex).SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{
			Keys:    bson.D{{Key: "track.id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create %s indexes: %w", MatchRecordsCollection, err)
	}
	return nil
}

// dropNonUniquePositionIndex removes a chart/position index created without
// the unique flag, which CreateMany would otherwise reject as a conflict.
func dropNonUniquePositionIndex(ctx context.Context, indexView mongo.IndexView) error {
	existing, err := indexView.ListSpecifications(ctx)
	if err != nil {
		return fmt.Errorf("list %s indexes: %w", MatchRecordsCollection, err)
	}
	for _, idx := range existing {
		if idx.Name != chartPositionIndex {
			continue
		}
		if idx.Unique != nil && *idx.Unique {
			return nil
		}
		if _, err := indexView.DropOne(ctx, chartPositionIndex); err != nil {
			return fmt.Errorf("drop index %s: %w", chartPositionIndex, err)
		}
		return nil
	}
	return nil
}
