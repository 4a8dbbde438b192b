// Command firestore-import copies rooms, advance bookings and payments from the legacy
// Firestore project into the configured store. It is safe to run more than once.
package main

import (
	"context"
	"flag"
	"time"

	"innkeep/config"
	"innkeep/database"
	"innkeep/database/repository"
	"innkeep/services/ledger"
	"innkeep/services/legacy"
	"innkeep/utils"

	"go.uber.org/zap"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Minute, "overall import deadline")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig
	loc := config.Location()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	source, err := legacy.NewFirestoreSource(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials)
	if err != nil {
		logger.Fatal("import: failed to open Firestore", zap.Error(err))
	}
	defer source.Close()

	database.InitDB()
	defer func() { _ = database.MongoClient.Disconnect(context.Background()) }()
	stores := repository.NewMongoStores(database.MongoClient, database.DB())
	if err := stores.EnsureIndexes(ctx); err != nil {
		logger.Fatal("import: failed to ensure indexes", zap.Error(err))
	}

	importer := &legacy.Importer{
		Source:     source,
		Rooms:      stores.Rooms,
		Bookings:   stores.Bookings,
		LedgerRepo: stores.Ledger,
		Ledger: &ledger.DefaultLedgerService{
			Repo:     stores.Ledger,
			Tx:       stores.Tx,
			Clock:    utils.SystemClock{},
			Location: loc,
		},
		Clock:    utils.SystemClock{},
		Location: loc,
	}

	report, err := importer.Run(ctx)
	if err != nil {
		logger.Fatal("import: failed", zap.Error(err), zap.Any("partial", report))
	}
	logger.Info("import: done", zap.Any("report", report))
}
