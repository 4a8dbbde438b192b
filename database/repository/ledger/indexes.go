package ledgerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on ledger_entries and daily_totals.
func (r *MongoLedgerRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	entryIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("timestamp_idx"),
		},
		{
			Keys:    bson.D{{Key: "ref.kind", Value: 1}, {Key: "ref.id", Value: 1}},
			Options: options.Index().SetName("ref_idx"),
		},
		{
			Keys:    bson.D{{Key: "day", Value: 1}, {Key: "mode", Value: 1}},
			Options: options.Index().SetName("day_mode_idx"),
		},
	}
	if _, err := r.entries.Indexes().CreateMany(ctx, entryIndexes); err != nil {
		return fmt.Errorf("failed to create ledger indexes: %w", err)
	}

	if _, err := r.totals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "day", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_day"),
	}); err != nil {
		return fmt.Errorf("failed to create daily total indexes: %w", err)
	}
	return nil
}
