package houseRepo

import (
	"context"
	"errors"
	"time"

	"innkeep/database"
	"innkeep/models"
	"innkeep/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoHouseRepo struct {
	houses   *mongo.Collection
	bookings *mongo.Collection
}

// NewMongoHouseRepo constructs a new MongoDB HouseRepository.
func NewMongoHouseRepo(db *mongo.Database) HouseRepository {
	return &MongoHouseRepo{
		houses:   db.Collection("houses"),
		bookings: db.Collection("house_bookings"),
	}
}

func (r *MongoHouseRepo) SeedHouses(ctx context.Context, houses []models.House) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	for _, h := range houses {
		_, err := r.houses.UpdateOne(ctx,
			bson.M{"id": h.ID},
			bson.M{"$setOnInsert": h},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return utils.NewGatewayError("seed house "+h.ID, err)
		}
	}
	return nil
}

func (r *MongoHouseRepo) GetHouses(ctx context.Context) ([]models.House, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.houses.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, utils.NewGatewayError("list houses", err)
	}
	defer cursor.Close(ctx)

	houses := []models.House{}
	if err := cursor.All(ctx, &houses); err != nil {
		return nil, utils.NewGatewayError("decode houses", err)
	}
	return houses, nil
}

func (r *MongoHouseRepo) GetHouse(ctx context.Context, id string) (*models.House, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var house models.House
	err := r.houses.FindOne(ctx, bson.M{"id": id}).Decode(&house)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("house", id)
	}
	if err != nil {
		return nil, utils.NewGatewayError("find house", err)
	}
	return &house, nil
}

func (r *MongoHouseRepo) CreateBooking(ctx context.Context, booking *models.HouseBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return database.Translate("insert house booking", err, booking.HouseName+" is already occupied")
	}
	return nil
}

func (r *MongoHouseRepo) GetBooking(ctx context.Context, id string) (*models.HouseBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.HouseBooking
	err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("house booking", id)
	}
	if err != nil {
		return nil, utils.NewGatewayError("find house booking", err)
	}
	return &booking, nil
}

func (r *MongoHouseRepo) GetOpenBookings(ctx context.Context) ([]models.HouseBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "checkedInAt", Value: -1}})
	cursor, err := r.bookings.Find(ctx, bson.M{"isCheckedOut": false}, opts)
	if err != nil {
		return nil, utils.NewGatewayError("list house bookings", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.HouseBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.NewGatewayError("decode house bookings", err)
	}
	return bookings, nil
}

func (r *MongoHouseRepo) UpdateBooking(ctx context.Context, booking *models.HouseBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current := booking.Version
	next := *booking
	next.Version = current + 1

	res, err := r.bookings.ReplaceOne(ctx, bson.M{"id": booking.ID, "version": current}, &next)
	if err != nil {
		return utils.NewGatewayError("update house booking", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetBooking(ctx, booking.ID); err != nil {
			return err
		}
		return utils.NewStaleError("house booking", booking.ID)
	}
	booking.Version = next.Version
	return nil
}
