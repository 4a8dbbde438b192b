package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"innkeep/database/repository/memstore"
	"innkeep/models"
	mock_dashboard "innkeep/services/dashboard/mocks"
	"innkeep/utils"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const todayKey = "dashboard:summary:2025-06-10"

func seededService(t *testing.T) *DefaultDashboardService {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	for _, r := range []models.Room{
		{ID: "a", RoomNumber: 101, Floor: "1", Status: models.RoomOccupied},
		{ID: "b", RoomNumber: 102, Floor: "1", Status: models.RoomAvailable},
		{ID: "c", RoomNumber: 103, Floor: "1", Status: models.RoomAvailable},
		{ID: "d", RoomNumber: 104, Floor: "1", Status: models.RoomCleaning},
		{ID: "e", RoomNumber: 105, Floor: "1", Status: models.RoomMaintenance},
	} {
		r := r
		require.NoError(t, store.Rooms().Create(ctx, &r))
	}
	for _, total := range []models.DailyTotal{
		{Day: "2025-05-31", Cash: decimal.Zero, GPay: decimal.NewFromInt(1000)},
		{Day: "2025-06-02", Cash: decimal.NewFromInt(300), GPay: decimal.Zero},
		{Day: "2025-06-05", Cash: decimal.NewFromInt(200), GPay: decimal.Zero},
		{Day: "2025-06-10", Cash: decimal.NewFromInt(100), GPay: decimal.NewFromInt(50)},
	} {
		require.NoError(t, store.Ledger().SetDailyTotal(ctx, total))
	}

	return &DefaultDashboardService{
		Rooms:    store.Rooms(),
		Ledger:   store.Ledger(),
		TTL:      5 * time.Minute,
		Clock:    utils.NewFakeClock(time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)),
		Location: time.UTC,
	}
}

func TestSummary_Totals(t *testing.T) {
	svc := seededService(t)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.RoomStats{Total: 5, Occupied: 1, Available: 2, Cleaning: 1, Maintenance: 1}, s.Rooms)
	assert.Equal(t, "2025-06-10", s.AsOf)

	assert.True(t, s.Today.Cash.Equal(decimal.NewFromInt(100)))
	assert.True(t, s.Today.Total.Equal(decimal.NewFromInt(150)))
	assert.True(t, s.Week.Cash.Equal(decimal.NewFromInt(300)))
	assert.True(t, s.Week.GPay.Equal(decimal.NewFromInt(50)))
	assert.True(t, s.Month.Cash.Equal(decimal.NewFromInt(600)))
	assert.True(t, s.Month.Total.Equal(decimal.NewFromInt(650)))

	require.Len(t, s.Daily, 7)
	assert.Equal(t, "2025-06-04", s.Daily[0].Day)
	assert.True(t, s.Daily[1].Cash.Equal(decimal.NewFromInt(200)))
	last := s.Daily[6]
	assert.Equal(t, "2025-06-10", last.Day)
	assert.Equal(t, "Tue", last.Label)
	assert.True(t, last.GPay.Equal(decimal.NewFromInt(50)))
}

func TestSummary_CacheMissStoresSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_dashboard.NewMockCache(ctrl)

	svc := seededService(t)
	svc.Cache = cache

	var stored []byte
	cache.EXPECT().Get(gomock.Any(), todayKey).Return(nil, utils.ErrCacheMiss)
	cache.EXPECT().Set(gomock.Any(), todayKey, gomock.Any(), 5*time.Minute).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			stored = value
			return nil
		})

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)

	var decoded models.DashboardSummary
	require.NoError(t, json.Unmarshal(stored, &decoded))
	assert.Equal(t, s.AsOf, decoded.AsOf)
	assert.True(t, decoded.Month.Cash.Equal(s.Month.Cash))
}

func TestSummary_CacheHitSkipsStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_dashboard.NewMockCache(ctrl)

	cached := models.DashboardSummary{AsOf: "2025-06-10", Rooms: models.RoomStats{Total: 42}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	cache.EXPECT().Get(gomock.Any(), todayKey).Return(raw, nil)

	svc := &DefaultDashboardService{
		Cache:    cache,
		Clock:    utils.NewFakeClock(time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)),
		Location: time.UTC,
	}
	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, s.Rooms.Total)
}

func TestSummary_CacheFailuresFallBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_dashboard.NewMockCache(ctrl)

	svc := seededService(t)
	svc.Cache = cache

	cache.EXPECT().Get(gomock.Any(), todayKey).Return(nil, errors.New("connection refused"))
	cache.EXPECT().Set(gomock.Any(), todayKey, gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Rooms.Total)
}

func TestInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := mock_dashboard.NewMockCache(ctrl)

	svc := seededService(t)
	svc.Cache = cache

	gomock.InOrder(
		cache.EXPECT().Delete(gomock.Any(), todayKey).Return(nil),
		cache.EXPECT().Delete(gomock.Any(), todayKey).Return(errors.New("timeout")),
	)
	svc.Invalidate(context.Background())
	svc.Invalidate(context.Background())

	svc.Cache = nil
	svc.Invalidate(context.Background())
}
