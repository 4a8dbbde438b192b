package stayRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"innkeep/database"
	"innkeep/models"
	"innkeep/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStayRepo struct {
	coll *mongo.Collection
}

// NewMongoStayRepo constructs a new MongoDB StayRepository.
func NewMongoStayRepo(db *mongo.Database) StayRepository {
	return &MongoStayRepo{coll: db.Collection("stays")}
}

func (r *MongoStayRepo) Create(ctx context.Context, stay *models.Stay) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, stay); err != nil {
		return database.Translate("insert stay", err, fmt.Sprintf("room %d already has an open stay", stay.RoomNumber))
	}
	return nil
}

func (r *MongoStayRepo) GetByID(ctx context.Context, id string) (*models.Stay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var stay models.Stay
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&stay)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("stay", id)
	}
	if err != nil {
		return nil, utils.NewGatewayError("find stay", err)
	}
	return &stay, nil
}

func (r *MongoStayRepo) GetOpen(ctx context.Context) ([]models.Stay, error) {
	return r.find(ctx, bson.M{"isCheckedOut": false})
}

func (r *MongoStayRepo) GetAll(ctx context.Context) ([]models.Stay, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoStayRepo) find(ctx context.Context, filter bson.M) ([]models.Stay, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "checkedInAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewGatewayError("list stays", err)
	}
	defer cursor.Close(ctx)

	stays := []models.Stay{}
	if err := cursor.All(ctx, &stays); err != nil {
		return nil, utils.NewGatewayError("decode stays", err)
	}
	return stays, nil
}

func (r *MongoStayRepo) Update(ctx context.Context, stay *models.Stay) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current := stay.Version
	next := *stay
	next.Version = current + 1

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": stay.ID, "version": current}, &next)
	if err != nil {
		return database.Translate("update stay", err, fmt.Sprintf("room %d already has an open stay", stay.RoomNumber))
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, stay.ID); err != nil {
			return err
		}
		return utils.NewStaleError("stay", stay.ID)
	}
	stay.Version = next.Version
	return nil
}
