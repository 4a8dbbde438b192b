package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"innkeep/models"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	rooms := s.Rooms()
	ledger := s.Ledger()

	require.NoError(t, rooms.Create(ctx, &models.Room{ID: "r1", RoomNumber: 101, Floor: "1", Status: models.RoomAvailable}))

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, rooms.UpdateStatus(txCtx, "r1", models.RoomOccupied))
		require.NoError(t, ledger.IncDailyTotal(txCtx, "2025-06-01", decimal.NewFromInt(500), decimal.Zero, 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	room, err := rooms.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)

	total, err := ledger.GetDailyTotal(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, total.Cash.IsZero())
	assert.Zero(t, total.Count)
}

func TestWithTransaction_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	s := New()

	err := s.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.WithTransaction(txCtx, func(inner context.Context) error {
			return s.Rooms().Create(inner, &models.Room{ID: "r1", RoomNumber: 101, Floor: "1"})
		})
	})
	require.NoError(t, err)

	_, err = s.Rooms().GetByID(ctx, "r1")
	assert.NoError(t, err)
}

func TestHouseRepo_UpdateBookingVersionCheck(t *testing.T) {
	ctx := context.Background()
	s := New()
	repo := s.Houses()

	booking := &models.HouseBooking{ID: "b1", HouseID: "guest-house", HouseName: "Guest House", Version: 1}
	require.NoError(t, repo.CreateBooking(ctx, booking))

	first, err := repo.GetBooking(ctx, "b1")
	require.NoError(t, err)
	second, err := repo.GetBooking(ctx, "b1")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateBooking(ctx, first))
	assert.Equal(t, 2, first.Version)

	err = repo.UpdateBooking(ctx, second)
	assert.True(t, utils.IsStale(err))

	err = repo.UpdateBooking(ctx, &models.HouseBooking{ID: "missing", Version: 1})
	var nf *utils.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestHouseRepo_OneOpenBookingPerHouse(t *testing.T) {
	ctx := context.Background()
	repo := New().Houses()

	require.NoError(t, repo.CreateBooking(ctx, &models.HouseBooking{ID: "b1", HouseID: "guest-house", HouseName: "Guest House"}))
	err := repo.CreateBooking(ctx, &models.HouseBooking{ID: "b2", HouseID: "guest-house", HouseName: "Guest House"})

	var ce *utils.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Message, "Guest House is already occupied")
}

func TestAdvanceBookingRepo_Claims(t *testing.T) {
	ctx := context.Background()
	s := New()
	repo := s.AdvanceBookings()

	require.NoError(t, repo.ClaimRooms(ctx, "b1", "2025-06-01", []string{"r1", "r2"}))
	assert.Equal(t, 2, s.ClaimCount("b1"))

	err := repo.ClaimRooms(ctx, "b2", "2025-06-01", []string{"r3", "r2"})
	var ce *utils.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Zero(t, s.ClaimCount("b2"), "a rejected claim must not reserve any room")

	require.NoError(t, repo.ClaimRooms(ctx, "b2", "2025-06-02", []string{"r2"}))

	require.NoError(t, repo.ReleaseClaims(ctx, "b1"))
	assert.Zero(t, s.ClaimCount("b1"))
	require.NoError(t, repo.ClaimRooms(ctx, "b3", "2025-06-01", []string{"r2"}))
}

func TestLedgerRepo_SumDayIgnoresUncollectedModes(t *testing.T) {
	ctx := context.Background()
	repo := New().Ledger()
	ts := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Insert(ctx, []models.LedgerEntry{
		{ID: "e1", Day: "2025-06-01", Timestamp: ts, Amount: decimal.NewFromInt(1000), Mode: models.ModeCash},
		{ID: "e2", Day: "2025-06-01", Timestamp: ts, Amount: decimal.NewFromInt(400), Mode: models.ModeGPay},
		{ID: "e3", Day: "2025-06-01", Timestamp: ts, Amount: decimal.NewFromInt(-200), Mode: models.ModeCash},
		{ID: "e4", Day: "2025-06-01", Timestamp: ts, Amount: decimal.NewFromInt(500), Mode: models.ModeNone},
		{ID: "e5", Day: "2025-06-02", Timestamp: ts.AddDate(0, 0, 1), Amount: decimal.NewFromInt(900), Mode: models.ModeCash},
	}))

	total, err := repo.SumDay(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(800).Equal(total.Cash), "cash %s", total.Cash)
	assert.True(t, decimal.NewFromInt(400).Equal(total.GPay), "gpay %s", total.GPay)
	assert.Equal(t, 3, total.Count)

	inserted, err := repo.Upsert(ctx, models.LedgerEntry{ID: "e1"})
	require.NoError(t, err)
	assert.False(t, inserted)

	days, err := repo.Days(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, days)
}
