package house

import (
	"context"
	"testing"
	"time"

	houseRepo "innkeep/database/repository/house"
	"innkeep/database/repository/memstore"
	"innkeep/models"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, repo houseRepo.HouseRepository, store *memstore.Store) (*DefaultHouseService, *ledger.DefaultLedgerService) {
	t.Helper()
	clock := utils.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	led := &ledger.DefaultLedgerService{Repo: store.Ledger(), Tx: store, Clock: clock, Location: time.UTC}
	svc := &DefaultHouseService{Repo: repo, Ledger: led, Tx: store, Clock: clock}
	require.NoError(t, svc.EnsureHouses(context.Background()))
	return svc, led
}

func checkInForm() models.HouseCheckInRequest {
	return models.HouseCheckInRequest{
		GuestName:      "Anita Sharma",
		PhoneNumber:    "9876500000",
		IDNumber:       "ID-77",
		NumberOfGuests: 3,
		StayType:       "day",
		DaysOfStay:     3,
		Rent:           decimal.NewFromInt(3000),
		InitialPayment: decimal.NewFromInt(1000),
		PaymentMode:    models.ModeCash,
	}
}

func amount(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestHouseLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc, led := newTestService(t, store.Houses(), store)

	b, err := svc.CheckIn(ctx, "guest-house", checkInForm())
	require.NoError(t, err)
	assert.Equal(t, "Guest House", b.HouseName)
	assert.True(t, b.PendingAmount.Equal(amount(2000)))
	assert.Equal(t, time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC), b.CheckOutDate)

	b, err = svc.AddExtraFee(ctx, b.ID, "Electricity", amount(500))
	require.NoError(t, err)
	assert.True(t, b.Rent.Equal(amount(3500)))
	assert.True(t, b.PendingAmount.Equal(amount(2500)))
	require.Len(t, b.ExtraFees, 1)

	b, err = svc.Extend(ctx, b.ID, 5, amount(1200))
	require.NoError(t, err)
	assert.True(t, b.Rent.Equal(amount(4700)))
	assert.True(t, b.PendingAmount.Equal(amount(3700)))
	assert.Equal(t, 8, b.DaysOfStay)
	assert.Equal(t, time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC), b.CheckOutDate)

	_, err = svc.RecordPayment(ctx, b.ID, amount(3701), models.ModeGPay)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)

	b, err = svc.RecordPayment(ctx, b.ID, amount(3700), models.ModeGPay)
	require.NoError(t, err)
	assert.True(t, b.PendingAmount.IsZero())

	board, err := svc.Board(ctx)
	require.NoError(t, err)
	for _, e := range board {
		if e.House.ID == "guest-house" {
			assert.Equal(t, "booked", e.Status)
			require.NotNil(t, e.Booking)
			assert.Equal(t, b.ID, e.Booking.ID)
		} else {
			assert.Equal(t, "available", e.Status)
		}
	}

	b, err = svc.CheckOut(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, b.IsCheckedOut)
	require.NotNil(t, b.CheckedOutAt)

	_, err = svc.RecordPayment(ctx, b.ID, amount(1), models.ModeCash)
	var ce *utils.ConflictError
	assert.ErrorAs(t, err, &ce)
	_, err = svc.CheckOut(ctx, b.ID)
	assert.ErrorAs(t, err, &ce)

	open, err := svc.OpenBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	entries, err := led.EntriesFor(ctx, models.LedgerRef{Kind: models.RefHouseBooking, ID: b.ID})
	require.NoError(t, err)
	types := map[models.EntryType]models.PaymentMode{}
	for _, e := range entries {
		types[e.Type] = e.Mode
	}
	assert.Equal(t, map[models.EntryType]models.PaymentMode{
		models.EntryInitial:   models.ModeCash,
		models.EntryExtraFee:  models.ModeNone,
		models.EntryExtension: models.ModeNone,
		models.EntryPayment:   models.ModeGPay,
	}, types)

	total, err := store.Ledger().GetDailyTotal(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.True(t, total.Cash.Equal(amount(1000)))
	assert.True(t, total.GPay.Equal(amount(3700)))
	assert.Equal(t, 2, total.Count)

	// The house can be let again after checkout.
	_, err = svc.CheckIn(ctx, "guest-house", checkInForm())
	assert.NoError(t, err)
}

func TestCheckIn_OccupiedHouseConflicts(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc, _ := newTestService(t, store.Houses(), store)

	_, err := svc.CheckIn(ctx, "white-house-first", checkInForm())
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, "white-house-first", checkInForm())
	var ce *utils.ConflictError
	require.ErrorAs(t, err, &ce)

	days, err := store.Ledger().Days(ctx)
	require.NoError(t, err)
	total, err := store.Ledger().GetDailyTotal(ctx, days[0])
	require.NoError(t, err)
	assert.Equal(t, 1, total.Count)

	_, err = svc.CheckIn(ctx, "no-such-house", checkInForm())
	var nf *utils.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCheckIn_MonthStayAndValidation(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc, _ := newTestService(t, store.Houses(), store)

	form := checkInForm()
	form.StayType = "month"
	form.DaysOfStay = 0
	b, err := svc.CheckIn(ctx, "white-house-ground", form)
	require.NoError(t, err)
	assert.Equal(t, MonthDays, b.DaysOfStay)
	assert.Equal(t, b.CheckedInAt.AddDate(0, 0, 30), b.CheckOutDate)

	tests := map[string]func(f *models.HouseCheckInRequest){
		"no guest":          func(f *models.HouseCheckInRequest) { f.GuestName = "" },
		"no guests counted": func(f *models.HouseCheckInRequest) { f.NumberOfGuests = 0 },
		"no days":           func(f *models.HouseCheckInRequest) { f.DaysOfStay = 0 },
		"initial over rent": func(f *models.HouseCheckInRequest) { f.InitialPayment = amount(3001) },
		"free stay":         func(f *models.HouseCheckInRequest) { f.Rent = decimal.Zero; f.InitialPayment = decimal.Zero },
		"bad mode":          func(f *models.HouseCheckInRequest) { f.PaymentMode = "card" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			f := checkInForm()
			mutate(&f)
			_, err := svc.CheckIn(ctx, "white-house-second", f)
			var ve *utils.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestMutationInputValidation(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc, _ := newTestService(t, store.Houses(), store)

	var ve *utils.ValidationError
	_, err := svc.Extend(ctx, "any", 0, amount(100))
	assert.ErrorAs(t, err, &ve)
	_, err = svc.Extend(ctx, "any", 1, amount(-1))
	assert.ErrorAs(t, err, &ve)
	_, err = svc.AddExtraFee(ctx, "any", " ", amount(10))
	assert.ErrorAs(t, err, &ve)
	_, err = svc.AddExtraFee(ctx, "any", "Laundry", decimal.Zero)
	assert.ErrorAs(t, err, &ve)
	_, err = svc.RecordPayment(ctx, "any", amount(10), models.ModeNone)
	assert.ErrorAs(t, err, &ve)

	var nf *utils.NotFoundError
	_, err = svc.RecordPayment(ctx, "missing", amount(10), models.ModeCash)
	assert.ErrorAs(t, err, &nf)
}

// staleRepo loses the version check on the first stale UpdateBooking calls.
type staleRepo struct {
	houseRepo.HouseRepository
	stale int
	calls int
}

func (r *staleRepo) UpdateBooking(ctx context.Context, b *models.HouseBooking) error {
	r.calls++
	if r.calls <= r.stale {
		return utils.NewStaleError("house booking", b.ID)
	}
	return r.HouseRepository.UpdateBooking(ctx, b)
}

func TestMutate_RetriesLostVersionCheck(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repo := &staleRepo{HouseRepository: store.Houses(), stale: 1}
	svc, led := newTestService(t, repo, store)

	b, err := svc.CheckIn(ctx, "guest-house", checkInForm())
	require.NoError(t, err)

	b, err = svc.RecordPayment(ctx, b.ID, amount(500), models.ModeCash)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	assert.True(t, b.PendingAmount.Equal(amount(1500)))
	assert.Len(t, b.Payments, 1)
	assert.Equal(t, 2, b.Version)

	entries, err := led.EntriesFor(ctx, models.LedgerRef{Kind: models.RefHouseBooking, ID: b.ID})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMutate_GivesUpAfterRetries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	repo := &staleRepo{HouseRepository: store.Houses(), stale: 100}
	svc, _ := newTestService(t, repo, store)
	svc.Retries = 2

	b, err := svc.CheckIn(ctx, "guest-house", checkInForm())
	require.NoError(t, err)

	_, err = svc.AddExtraFee(ctx, b.ID, "Laundry", amount(200))
	require.Error(t, err)
	assert.True(t, utils.IsStale(err))
	assert.Equal(t, 2, repo.calls)

	stored, err := store.Houses().GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ExtraFees)
	assert.True(t, stored.PendingAmount.Equal(amount(2000)))
}
