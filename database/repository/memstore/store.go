// Package memstore keeps every collection in process memory. It backs the "memory"
// database driver and the service tests.
package memstore

import (
	"context"
	"sync"

	"innkeep/models"
)

type txKey struct{}

// Store holds all collections behind one lock. Transactions hold the lock for their
// whole duration and restore a snapshot when fn fails.
type Store struct {
	mu sync.Mutex

	rooms       map[string]models.Room
	stays       map[string]models.Stay
	bookings    map[string]models.AdvanceBooking
	claims      map[claimKey]string
	houses      map[string]models.House
	houseBooks  map[string]models.HouseBooking
	entries     map[string]models.LedgerEntry
	dailyTotals map[string]models.DailyTotal
}

type claimKey struct {
	roomID string
	date   string
}

func New() *Store {
	return &Store{
		rooms:       map[string]models.Room{},
		stays:       map[string]models.Stay{},
		bookings:    map[string]models.AdvanceBooking{},
		claims:      map[claimKey]string{},
		houses:      map[string]models.House{},
		houseBooks:  map[string]models.HouseBooking{},
		entries:     map[string]models.LedgerEntry{},
		dailyTotals: map[string]models.DailyTotal{},
	}
}

// lock acquires the store lock unless ctx belongs to a transaction on this store,
// which already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, _ := ctx.Value(txKey{}).(*Store); owner == s {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	rooms       map[string]models.Room
	stays       map[string]models.Stay
	bookings    map[string]models.AdvanceBooking
	claims      map[claimKey]string
	houses      map[string]models.House
	houseBooks  map[string]models.HouseBooking
	entries     map[string]models.LedgerEntry
	dailyTotals map[string]models.DailyTotal
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		rooms:       copyMap(s.rooms, func(r models.Room) models.Room { return r }),
		stays:       copyMap(s.stays, func(v models.Stay) models.Stay { return cloneStay(v) }),
		bookings:    copyMap(s.bookings, cloneBooking),
		claims:      copyMap(s.claims, func(v string) string { return v }),
		houses:      copyMap(s.houses, func(h models.House) models.House { return h }),
		houseBooks:  copyMap(s.houseBooks, cloneHouseBooking),
		entries:     copyMap(s.entries, func(e models.LedgerEntry) models.LedgerEntry { return e }),
		dailyTotals: copyMap(s.dailyTotals, func(t models.DailyTotal) models.DailyTotal { return t }),
	}
}

func (s *Store) restore(snap snapshot) {
	s.rooms = snap.rooms
	s.stays = snap.stays
	s.bookings = snap.bookings
	s.claims = snap.claims
	s.houses = snap.houses
	s.houseBooks = snap.houseBooks
	s.entries = snap.entries
	s.dailyTotals = snap.dailyTotals
}

func copyMap[K comparable, V any](m map[K]V, clone func(V) V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func cloneStay(v models.Stay) models.Stay {
	if v.CheckedOutAt != nil {
		t := *v.CheckedOutAt
		v.CheckedOutAt = &t
	}
	return v
}

func cloneBooking(b models.AdvanceBooking) models.AdvanceBooking {
	b.Rooms = append([]models.RoomLineItem(nil), b.Rooms...)
	if b.CancelledAt != nil {
		t := *b.CancelledAt
		b.CancelledAt = &t
	}
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		b.CompletedAt = &t
	}
	return b
}

func cloneHouseBooking(b models.HouseBooking) models.HouseBooking {
	b.ExtraFees = append([]models.ExtraFee(nil), b.ExtraFees...)
	b.Extensions = append([]models.Extension(nil), b.Extensions...)
	b.Payments = append([]models.HousePayment(nil), b.Payments...)
	if b.CheckedOutAt != nil {
		t := *b.CheckedOutAt
		b.CheckedOutAt = &t
	}
	return b
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }
