package roomRepo

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

type MongoRoomRepo struct {
	coll *mongo.Collection
}

// NewMongoRoomRepo constructs a new MongoDB RoomRepository.
func NewMongoRoomRepo(db *mongo.Database) RoomRepository {
	return &MongoRoomRepo{coll: db.Collection("rooms")}
}

func (r *MongoRoomRepo) Create(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		return database.Translate("insert room", err, fmt.Sprintf("room %s already exists", room.ID))
	}
	return nil
}

func (r *MongoRoomRepo) Upsert(ctx context.Context, room *models.Room) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": room.ID}, room, options.Replace().SetUpsert(true))
	return database.Translate("upsert room", err, "room upsert collided")
}

func (r *MongoRoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var room models.Room
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&room)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("room", id)
	}
	if err != nil {
		return nil, utils.NewGatewayError("find room", err)
	}
	return &room, nil
}

func (r *MongoRoomRepo) GetAll(ctx context.Context) ([]models.Room, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "roomNumber", Value: 1}, {Key: "floor", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, utils.NewGatewayError("list rooms", err)
	}
	defer cursor.Close(ctx)

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, utils.NewGatewayError("decode rooms", err)
	}
	return rooms, nil
}

func (r *MongoRoomRepo) UpdateStatus(ctx context.Context, id string, status models.RoomStatus, from ...models.RoomStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return utils.NewGatewayError("update room status", err)
	}
	if res.MatchedCount == 0 {
		if len(from) == 0 {
			return utils.NewNotFoundError("room", id)
		}
		// Distinguish a missing room from one in the wrong state.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return utils.NewConflictError(fmt.Sprintf("room %s is not %v", id, from))
	}
	return nil
}
