package repository

import (
	"context"
	"fmt"

	"innkeep/database"
	advanceRepo "innkeep/database/repository/advance"
	houseRepo "innkeep/database/repository/house"
	ledgerRepo "innkeep/database/repository/ledger"
	"innkeep/database/repository/memstore"
	roomRepo "innkeep/database/repository/room"
	stayRepo "innkeep/database/repository/stay"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces so wiring code imports one package.
type (
	RoomRepository           = roomRepo.RoomRepository
	StayRepository           = stayRepo.StayRepository
	AdvanceBookingRepository = advanceRepo.AdvanceBookingRepository
	HouseRepository          = houseRepo.HouseRepository
	LedgerRepository         = ledgerRepo.LedgerRepository
)

// Stores is one backend's full set of repositories plus its transaction runner.
type Stores struct {
	Rooms    RoomRepository
	Stays    StayRepository
	Bookings AdvanceBookingRepository
	Houses   HouseRepository
	Ledger   LedgerRepository
	Tx       database.TxRunner
	Ping     func(ctx context.Context) error
}

// NewMongoStores builds the repositories on db. Transactions need a replica set.
func NewMongoStores(client *mongo.Client, db *mongo.Database) *Stores {
	return &Stores{
		Rooms:    roomRepo.NewMongoRoomRepo(db),
		Stays:    stayRepo.NewMongoStayRepo(db),
		Bookings: advanceRepo.NewMongoAdvanceBookingRepo(db),
		Houses:   houseRepo.NewMongoHouseRepo(db),
		Ledger:   ledgerRepo.NewMongoLedgerRepo(db),
		Tx:       database.NewMongoTxRunner(client),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
	}
}

// NewMemoryStores builds repositories over a single in-process store.
func NewMemoryStores() *Stores {
	s := memstore.New()
	return &Stores{
		Rooms:    s.Rooms(),
		Stays:    s.Stays(),
		Bookings: s.AdvanceBookings(),
		Houses:   s.Houses(),
		Ledger:   s.Ledger(),
		Tx:       s,
		Ping:     s.Ping,
	}
}

// EnsureIndexes creates the indexes every repository relies on for its uniqueness rules.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	for name, ensure := range map[string]func(context.Context) error{
		"rooms":            s.Rooms.EnsureIndexes,
		"stays":            s.Stays.EnsureIndexes,
		"advance_bookings": s.Bookings.EnsureIndexes,
		"houses":           s.Houses.EnsureIndexes,
		"ledger":           s.Ledger.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensuring %s indexes: %w", name, err)
		}
	}
	return nil
}
