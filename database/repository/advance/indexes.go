package advanceRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on advance_bookings and room_claims.
func (r *MongoAdvanceBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "date_of_booking", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("date_status_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create advance booking indexes: %w", err)
	}

	claimIndexes := []mongo.IndexModel{
		// One claim per room and date.
		{
			Keys:    bson.D{{Key: "roomId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("room_date_claim"),
		},
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetName("booking_idx"),
		},
	}
	if _, err := r.claims.Indexes().CreateMany(ctx, claimIndexes); err != nil {
		return fmt.Errorf("failed to create room claim indexes: %w", err)
	}
	return nil
}
