package advanceRepo

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

type MongoAdvanceBookingRepo struct {
	coll   *mongo.Collection
	claims *mongo.Collection
}

// NewMongoAdvanceBookingRepo constructs a new MongoDB AdvanceBookingRepository.
func NewMongoAdvanceBookingRepo(db *mongo.Database) AdvanceBookingRepository {
	return &MongoAdvanceBookingRepo{
		coll:   db.Collection("advance_bookings"),
		claims: db.Collection("room_claims"),
	}
}

type roomClaim struct {
	RoomID    string    `bson:"roomId"`
	Date      string    `bson:"date"`
	BookingID string    `bson:"bookingId"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (r *MongoAdvanceBookingRepo) Create(ctx context.Context, booking *models.AdvanceBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return database.Translate("insert advance booking", err, "advance booking "+booking.ID+" already exists")
	}
	return nil
}

func (r *MongoAdvanceBookingRepo) Upsert(ctx context.Context, booking *models.AdvanceBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID}, booking, options.Replace().SetUpsert(true))
	return database.Translate("upsert advance booking", err, "advance booking upsert collided")
}

func (r *MongoAdvanceBookingRepo) GetByID(ctx context.Context, id string) (*models.AdvanceBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.AdvanceBooking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NewNotFoundError("advance booking", id)
	}
	if err != nil {
		return nil, utils.NewGatewayError("find advance booking", err)
	}
	return &booking, nil
}

func (r *MongoAdvanceBookingRepo) GetActiveByDate(ctx context.Context, date string) ([]models.AdvanceBooking, error) {
	return r.find(ctx, bson.M{"date_of_booking": date, "status": models.BookingActive})
}

func (r *MongoAdvanceBookingRepo) GetAll(ctx context.Context) ([]models.AdvanceBooking, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoAdvanceBookingRepo) find(ctx context.Context, filter bson.M) ([]models.AdvanceBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date_of_booking", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "id", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewGatewayError("list advance bookings", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.AdvanceBooking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.NewGatewayError("decode advance bookings", err)
	}
	return bookings, nil
}

func (r *MongoAdvanceBookingRepo) Update(ctx context.Context, booking *models.AdvanceBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	current := booking.Version
	next := *booking
	next.Version = current + 1

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID, "version": current}, &next)
	if err != nil {
		return utils.NewGatewayError("update advance booking", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, booking.ID); err != nil {
			return err
		}
		return utils.NewStaleError("advance booking", booking.ID)
	}
	booking.Version = next.Version
	return nil
}

func (r *MongoAdvanceBookingRepo) ClaimRooms(ctx context.Context, bookingID, date string, roomIDs []string) error {
	if len(roomIDs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(roomIDs))
	for _, id := range roomIDs {
		docs = append(docs, roomClaim{RoomID: id, Date: date, BookingID: bookingID, CreatedAt: now})
	}
	if _, err := r.claims.InsertMany(ctx, docs); err != nil {
		return database.Translate("claim rooms", err, "one or more rooms are already reserved for "+date)
	}
	return nil
}

func (r *MongoAdvanceBookingRepo) ReleaseClaims(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.claims.DeleteMany(ctx, bson.M{"bookingId": bookingID}); err != nil {
		return utils.NewGatewayError("release room claims", err)
	}
	return nil
}
