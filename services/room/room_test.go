package room

import (
	"context"
	"testing"
	"time"

	"innkeep/database/repository/memstore"
	"innkeep/models"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct{ calls int }

func (r *recordingInvalidator) Invalidate(context.Context) { r.calls++ }

func newRoomService(t *testing.T) (*DefaultRoomService, *memstore.Store, *recordingInvalidator) {
	t.Helper()
	store := memstore.New()
	clock := utils.NewFakeClock(time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	inv := &recordingInvalidator{}
	svc := &DefaultRoomService{
		Rooms:       store.Rooms(),
		Stays:       store.Stays(),
		Ledger:      &ledger.DefaultLedgerService{Repo: store.Ledger(), Tx: store, Clock: clock, Location: time.UTC},
		Tx:          store,
		Clock:       clock,
		Invalidator: inv,
	}
	return svc, store, inv
}

func stayForm() models.RoomCheckInRequest {
	return models.RoomCheckInRequest{
		GuestName:      "Vikram",
		Mobile:         "9000011111",
		IDNumber:       "DL-42",
		NumberOfGuests: 2,
		Rent:           decimal.NewFromInt(2500),
		InitialPayment: decimal.NewFromInt(1000),
		PaymentMode:    models.ModeCash,
	}
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	svc, _, inv := newRoomService(t)

	room, err := svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 101, Floor: " 1 ", Type: "NON AC"})
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Equal(t, "1", room.Floor)
	assert.Equal(t, 1, inv.calls)

	_, err = svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 101, Floor: "1", Type: "AC"})
	var ce *utils.ConflictError
	assert.ErrorAs(t, err, &ce)

	// Room numbers repeat across floors.
	_, err = svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 101, Floor: "2", Type: "AC"})
	assert.NoError(t, err)

	var ve *utils.ValidationError
	_, err = svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 0, Floor: "1", Type: "AC"})
	assert.ErrorAs(t, err, &ve)
	_, err = svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 5, Floor: "1", Type: "AC", Status: "haunted"})
	assert.ErrorAs(t, err, &ve)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestStayLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newRoomService(t)

	room, err := svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 204, Floor: "2", Type: "AC"})
	require.NoError(t, err)

	stay, err := svc.CheckInRoom(ctx, room.ID, stayForm())
	require.NoError(t, err)
	assert.True(t, stay.PendingAmount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, 204, stay.RoomNumber)

	got, err := store.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, got.Status)

	_, err = svc.CheckInRoom(ctx, room.ID, stayForm())
	var ce *utils.ConflictError
	require.ErrorAs(t, err, &ce)

	_, err = svc.RecordStayPayment(ctx, stay.ID, decimal.NewFromInt(1501), models.ModeGPay)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)

	svc.Clock.(*utils.FakeClock).Advance(time.Hour)
	stay, err = svc.RecordStayPayment(ctx, stay.ID, decimal.NewFromInt(500), models.ModeGPay)
	require.NoError(t, err)
	assert.True(t, stay.PendingAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 2, stay.Version)

	payments, err := svc.StayPayments(ctx, stay.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, models.EntryInitial, payments[0].Type)
	assert.Equal(t, "204", payments[0].RoomNumber)
	assert.Equal(t, models.EntryPayment, payments[1].Type)

	open, err := svc.ListStays(ctx, true)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	stay, err = svc.CheckOutRoom(ctx, stay.ID)
	require.NoError(t, err)
	assert.True(t, stay.IsCheckedOut)

	got, err = store.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomCleaning, got.Status)

	_, err = svc.CheckOutRoom(ctx, stay.ID)
	assert.ErrorAs(t, err, &ce)
	_, err = svc.RecordStayPayment(ctx, stay.ID, decimal.NewFromInt(1), models.ModeCash)
	assert.ErrorAs(t, err, &ce)

	open, err = svc.ListStays(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, open)
	all, err := svc.ListStays(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// A room being cleaned cannot take a guest until it is made available.
	_, err = svc.CheckInRoom(ctx, room.ID, stayForm())
	assert.ErrorAs(t, err, &ce)
	require.NoError(t, svc.UpdateRoomStatus(ctx, room.ID, models.RoomAvailable))
	_, err = svc.CheckInRoom(ctx, room.ID, stayForm())
	assert.NoError(t, err)

	total, err := store.Ledger().GetDailyTotal(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, total.Cash.Equal(decimal.NewFromInt(2000)))
	assert.True(t, total.GPay.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 3, total.Count)
}

func TestCheckInRoom_FailedCheckInLeavesRoomAvailable(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newRoomService(t)

	room, err := svc.CreateRoom(ctx, models.CreateRoomRequest{RoomNumber: 301, Floor: "3", Type: "AC"})
	require.NoError(t, err)

	// An open stay left behind for the room makes the stay insert fail after the
	// status flip.
	require.NoError(t, store.Stays().Create(ctx, &models.Stay{ID: "orphan", RoomID: room.ID, RoomNumber: 301}))

	_, err = svc.CheckInRoom(ctx, room.ID, stayForm())
	var ce *utils.ConflictError
	require.ErrorAs(t, err, &ce)

	got, err := store.Rooms().GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, got.Status)
	days, err := store.Ledger().Days(ctx)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestStayValidationAndLookups(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newRoomService(t)

	var ve *utils.ValidationError
	form := stayForm()
	form.PaymentMode = models.ModeNone
	_, err := svc.CheckInRoom(ctx, "any", form)
	assert.ErrorAs(t, err, &ve)

	form = stayForm()
	form.InitialPayment = decimal.NewFromInt(3000)
	_, err = svc.CheckInRoom(ctx, "any", form)
	assert.ErrorAs(t, err, &ve)

	assert.ErrorAs(t, svc.UpdateRoomStatus(ctx, "any", "haunted"), &ve)

	var nf *utils.NotFoundError
	_, err = svc.CheckInRoom(ctx, "missing", stayForm())
	assert.ErrorAs(t, err, &nf)
	_, err = svc.StayPayments(ctx, "missing")
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, svc.UpdateRoomStatus(ctx, "missing", models.RoomCleaning), &nf)
}
