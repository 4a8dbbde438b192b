package ledgerRepo

import (
	"context"
	"errors"
	"time"

	"innkeep/database"
	"innkeep/models"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoLedgerRepo struct {
	entries *mongo.Collection
	totals  *mongo.Collection
}

// NewMongoLedgerRepo constructs a new MongoDB LedgerRepository.
func NewMongoLedgerRepo(db *mongo.Database) LedgerRepository {
	return &MongoLedgerRepo{
		entries: db.Collection("ledger_entries"),
		totals:  db.Collection("daily_totals"),
	}
}

func (r *MongoLedgerRepo) Insert(ctx context.Context, entries []models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}
	if _, err := r.entries.InsertMany(ctx, docs); err != nil {
		return database.Translate("insert ledger entries", err, "ledger entry already posted")
	}
	return nil
}

func (r *MongoLedgerRepo) Upsert(ctx context.Context, entry models.LedgerEntry) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.entries.UpdateOne(ctx,
		bson.M{"id": entry.ID},
		bson.M{"$setOnInsert": entry},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, utils.NewGatewayError("upsert ledger entry", err)
	}
	return res.UpsertedCount > 0, nil
}

func (r *MongoLedgerRepo) Find(ctx context.Context, q LedgerQuery) ([]models.LedgerEntry, error) {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.From != nil || q.To != nil {
		ts := bson.M{}
		if q.From != nil {
			ts["$gte"] = *q.From
		}
		if q.To != nil {
			ts["$lte"] = *q.To
		}
		filter["timestamp"] = ts
	}
	return r.find(ctx, filter)
}

func (r *MongoLedgerRepo) FindByRef(ctx context.Context, ref models.LedgerRef) ([]models.LedgerEntry, error) {
	return r.find(ctx, bson.M{"ref.kind": ref.Kind, "ref.id": ref.ID})
}

func (r *MongoLedgerRepo) find(ctx context.Context, filter bson.M) ([]models.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.entries.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewGatewayError("list ledger entries", err)
	}
	defer cursor.Close(ctx)

	entries := []models.LedgerEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, utils.NewGatewayError("decode ledger entries", err)
	}
	return entries, nil
}

func (r *MongoLedgerRepo) Days(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	raw, err := r.entries.Distinct(ctx, "day", bson.M{})
	if err != nil {
		return nil, utils.NewGatewayError("list ledger days", err)
	}
	days := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			days = append(days, s)
		}
	}
	return days, nil
}

type modeSum struct {
	Mode  models.PaymentMode `bson:"_id"`
	Total decimal.Decimal    `bson:"total"`
	Count int                `bson:"count"`
}

func (r *MongoLedgerRepo) SumDay(ctx context.Context, day string) (models.DailyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"day":  day,
			"mode": bson.M{"$in": bson.A{models.ModeCash, models.ModeGPay}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$mode",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.entries.Aggregate(ctx, pipeline)
	if err != nil {
		return models.DailyTotal{}, utils.NewGatewayError("sum ledger day", err)
	}
	defer cursor.Close(ctx)

	var sums []modeSum
	if err := cursor.All(ctx, &sums); err != nil {
		return models.DailyTotal{}, utils.NewGatewayError("decode ledger sums", err)
	}

	total := models.DailyTotal{Day: day, Cash: decimal.Zero, GPay: decimal.Zero}
	for _, s := range sums {
		switch s.Mode {
		case models.ModeCash:
			total.Cash = s.Total
		case models.ModeGPay:
			total.GPay = s.Total
		}
		total.Count += s.Count
	}
	return total, nil
}

func (r *MongoLedgerRepo) IncDailyTotal(ctx context.Context, day string, cash, gpay decimal.Decimal, count int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.totals.UpdateOne(ctx,
		bson.M{"day": day},
		bson.M{
			"$inc": bson.M{"cash": cash, "gpay": gpay, "count": count},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return utils.NewGatewayError("increment daily total", err)
	}
	return nil
}

func (r *MongoLedgerRepo) SetDailyTotal(ctx context.Context, total models.DailyTotal) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.totals.ReplaceOne(ctx, bson.M{"day": total.Day}, total, options.Replace().SetUpsert(true))
	if err != nil {
		return utils.NewGatewayError("set daily total", err)
	}
	return nil
}

func (r *MongoLedgerRepo) GetDailyTotal(ctx context.Context, day string) (models.DailyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total := models.DailyTotal{Day: day, Cash: decimal.Zero, GPay: decimal.Zero}
	err := r.totals.FindOne(ctx, bson.M{"day": day}).Decode(&total)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return total, utils.NewGatewayError("find daily total", err)
	}
	return total, nil
}

func (r *MongoLedgerRepo) GetDailyTotals(ctx context.Context, fromDay, toDay string) ([]models.DailyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"day": bson.M{"$gte": fromDay, "$lte": toDay}}
	cursor, err := r.totals.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "day", Value: 1}}))
	if err != nil {
		return nil, utils.NewGatewayError("list daily totals", err)
	}
	defer cursor.Close(ctx)

	totals := []models.DailyTotal{}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, utils.NewGatewayError("decode daily totals", err)
	}
	return totals, nil
}
