package stayRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the stays collection.
func (r *MongoStayRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// At most one open stay per room.
		{
			Keys: bson.D{{Key: "roomId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isCheckedOut": false}).
				SetName("open_stay_per_room"),
		},
		{
			Keys:    bson.D{{Key: "isCheckedOut", Value: 1}, {Key: "checkedInAt", Value: -1}},
			Options: options.Index().SetName("open_checked_in_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create stay indexes: %w", err)
	}
	return nil
}
