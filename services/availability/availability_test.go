package availability

import (
	"context"
	"testing"

	"innkeep/database/repository/memstore"
	"innkeep/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRooms(t *testing.T, store *memstore.Store, rooms ...models.Room) {
	t.Helper()
	for i := range rooms {
		if rooms[i].Status == "" {
			rooms[i].Status = models.RoomAvailable
		}
		require.NoError(t, store.Rooms().Create(context.Background(), &rooms[i]))
	}
}

func roomNumbers(rooms []models.Room) []int {
	out := make([]int, len(rooms))
	for i, r := range rooms {
		out[i] = r.RoomNumber
	}
	return out
}

func newService(store *memstore.Store) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Rooms:    store.Rooms(),
		Bookings: store.AdvanceBookings(),
		Stays:    store.Stays(),
	}
}

func TestFindAvailableRooms_ActiveBookingReservesRoomForItsDate(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seedRooms(t, store,
		models.Room{ID: "r201", RoomNumber: 201, Floor: "2", Type: "NON AC"},
		models.Room{ID: "r101", RoomNumber: 101, Floor: "1", Type: "NON AC"},
		models.Room{ID: "r102", RoomNumber: 102, Floor: "1", Type: "AC"},
	)
	svc := newService(store)

	got, err := svc.FindAvailableRooms(ctx, "2025-06-01", "NON AC")
	require.NoError(t, err)
	assert.Equal(t, []int{101, 201}, roomNumbers(got))

	require.NoError(t, store.AdvanceBookings().Create(ctx, &models.AdvanceBooking{
		ID:            "b1",
		DateOfBooking: "2025-06-01",
		Status:        models.BookingActive,
		Rooms:         []models.RoomLineItem{{RoomID: "r101", RoomNumber: 101}},
	}))

	got, err = svc.FindAvailableRooms(ctx, "2025-06-01", "NON AC")
	require.NoError(t, err)
	assert.Equal(t, []int{201}, roomNumbers(got))

	got, err = svc.FindAvailableRooms(ctx, "2025-06-02", "NON AC")
	require.NoError(t, err)
	assert.Equal(t, []int{101, 201}, roomNumbers(got))
}

func TestFindAvailableRooms_Exclusions(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	seedRooms(t, store,
		models.Room{ID: "r101", RoomNumber: 101, Floor: "1", Type: "Deluxe"},
		models.Room{ID: "r102", RoomNumber: 102, Floor: "1", Type: "Deluxe", Status: models.RoomCleaning},
		models.Room{ID: "r103", RoomNumber: 103, Floor: "1", Type: "Deluxe"},
		models.Room{ID: "r104", RoomNumber: 104, Floor: "1", Type: "Deluxe"},
	)
	require.NoError(t, store.Stays().Create(ctx, &models.Stay{ID: "s1", RoomID: "r103", RoomNumber: 103}))
	require.NoError(t, store.AdvanceBookings().Create(ctx, &models.AdvanceBooking{
		ID:            "cancelled",
		DateOfBooking: "2025-06-01",
		Status:        models.BookingCancelled,
		Rooms:         []models.RoomLineItem{{RoomID: "r104"}},
	}))

	got, err := newService(store).FindAvailableRooms(ctx, "2025-06-01", "deluxe")
	require.NoError(t, err)
	assert.Equal(t, []int{101, 104}, roomNumbers(got))
}

func TestFindAvailableRooms_NoRoomsIsNotAnError(t *testing.T) {
	got, err := newService(memstore.New()).FindAvailableRooms(context.Background(), "2025-06-01", "AC")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTypeMatches(t *testing.T) {
	tests := []struct {
		roomType string
		wanted   string
		want     bool
	}{
		{"NON AC", "NON AC", true},
		{"Non AC", "non-ac", true},
		{"Non AC", "AC", true},
		{"AC", "Non AC", false},
		{"Deluxe Suite", "deluxe", true},
		{"Deluxe Suite", "  Deluxe   Suite ", true},
		{"Standard", "", true},
		{"Standard", "suite", false},
	}
	for _, tt := range tests {
		t.Run(tt.roomType+"/"+tt.wanted, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeMatches(tt.roomType, tt.wanted))
		})
	}
}
