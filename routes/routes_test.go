package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innkeep/config"
	"innkeep/database/repository/memstore"
	"innkeep/handlers"
	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/services/booking"
	"innkeep/services/dashboard"
	"innkeep/services/house"
	"innkeep/services/ledger"
	"innkeep/services/room"
	"innkeep/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"
	require.NoError(t, handlers.RegisterValidators())

	store := memstore.New()
	clock := utils.NewFakeClock(time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))
	dash := &dashboard.DefaultDashboardService{Rooms: store.Rooms(), Ledger: store.Ledger(), Clock: clock, Location: time.UTC}
	led := &ledger.DefaultLedgerService{Repo: store.Ledger(), Tx: store, Clock: clock, Location: time.UTC, Invalidator: dash}
	avail := &availability.DefaultAvailabilityService{Rooms: store.Rooms(), Bookings: store.AdvanceBookings(), Stays: store.Stays()}
	bookings := &booking.DefaultAdvanceBookingService{Repo: store.AdvanceBookings(), Availability: avail, Ledger: led, Tx: store, Clock: clock, Invalidator: dash}
	houses := &house.DefaultHouseService{Repo: store.Houses(), Ledger: led, Tx: store, Clock: clock, Invalidator: dash}
	rooms := &room.DefaultRoomService{Rooms: store.Rooms(), Stays: store.Stays(), Ledger: led, Tx: store, Clock: clock, Invalidator: dash}
	require.NoError(t, houses.EnsureHouses(context.Background()))

	hb := handlers.NewHandlerBundle(
		handlers.NewRoomHandler(rooms, avail),
		handlers.NewBookingHandler(bookings),
		handlers.NewHouseHandler(houses),
		handlers.NewPaymentHandler(led, time.UTC, clock),
		handlers.NewDashboardHandler(dash),
	)
	r := gin.New()
	RegisterRoutes(r, hb, Options{MaxRequestsPerMin: 1000})
	return r
}

func adminToken(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateToken("front-desk", role, time.Hour)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPI_RequiresAdminToken(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/rooms", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/api/rooms", "not-a-jwt", nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, r, http.MethodGet, "/api/rooms", adminToken(t, "staff"), nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/api/rooms", adminToken(t, utils.RoleAdmin), nil).Code)

	health := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)
	assert.NotEmpty(t, health.Header().Get("X-Request-ID"))
}

func TestAPI_CreateBookingRequiresRoomIDs(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t, utils.RoleAdmin)

	w := do(t, r, http.MethodPost, "/api/advance-bookings", token, gin.H{
		"name": "Ravi", "mobile": "9876543210", "aadhar": "1111-2222-3333",
		"date_of_booking": "2025-06-01", "room_type": "NON AC", "number_of_rooms": 1,
		"advance_amount": 1000, "payment_mode": "cash",
		"rooms": []gin.H{{"price": 1500, "persons": 2}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid input")
	assert.Contains(t, w.Body.String(), "Rooms[0].RoomID")
}

func TestAPI_BookingFlow(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t, utils.RoleAdmin)

	w := do(t, r, http.MethodPost, "/api/rooms", token, gin.H{"roomNumber": 101, "floor": "1", "type": "NON AC"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, r, http.MethodPost, "/api/rooms", token, gin.H{"roomNumber": 101, "floor": "1", "type": "AC"})
	assert.Equal(t, http.StatusConflict, w.Code)

	available := func() []models.Room {
		w := do(t, r, http.MethodGet, "/api/rooms/available?date=2025-06-01&type=NON%20AC", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Rooms   []models.Room `json:"rooms"`
			NoRooms bool          `json:"noRooms"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, len(body.Rooms) == 0, body.NoRooms)
		return body.Rooms
	}
	require.Len(t, available(), 1)

	w = do(t, r, http.MethodPost, "/api/advance-bookings", token, gin.H{
		"name": "Ravi", "mobile": "9876543210", "aadhar": "1111-2222-3333",
		"date_of_booking": "2025-06-01", "room_type": "NON AC", "number_of_rooms": 1,
		"advance_amount": 1000, "payment_mode": "cash",
		"rooms": []gin.H{{"roomId": created.ID, "price": 1500, "persons": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, available())

	w = do(t, r, http.MethodGet, "/api/advance-bookings/"+resp.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/api/advance-bookings/missing", token, nil).Code)

	w = do(t, r, http.MethodPost, "/api/advance-bookings/"+resp.ID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"refundAmount":"1000"`)
	assert.Len(t, available(), 1)

	w = do(t, r, http.MethodPost, "/api/advance-bookings/"+resp.ID+"/cancel", token, gin.H{"refund_amount": 0})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/api/payments?from=2025-05-20&to=2025-05-20", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report models.PaymentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Count)
	assert.True(t, report.CashTotal.IsZero())

	w = do(t, r, http.MethodGet, "/api/payments?from=20-05-2025", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/payments/export?type=refund", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payments-2025-05-20.xlsx")
	assert.NotZero(t, w.Body.Len())

	w = do(t, r, http.MethodPost, "/api/payments/reconcile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"drift":false`)

	w = do(t, r, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary models.DashboardSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Rooms.Available)
}

func TestAPI_StayAndHouseFlow(t *testing.T) {
	r := newTestRouter(t)
	token := adminToken(t, utils.RoleAdmin)

	w := do(t, r, http.MethodPost, "/api/rooms", token, gin.H{"roomNumber": 7, "floor": "G", "type": "Deluxe"})
	require.Equal(t, http.StatusCreated, w.Code)
	var rm models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rm))

	w = do(t, r, http.MethodPost, "/api/rooms/"+rm.ID+"/checkin", token, gin.H{
		"guestName": "Vikram", "mobile": "900", "idNumber": "X1", "numberOfGuests": 1,
		"rent": 2000, "initialPayment": 500, "paymentMode": "upi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/rooms/"+rm.ID+"/checkin", token, gin.H{
		"guestName": "Vikram", "mobile": "900", "idNumber": "X1", "numberOfGuests": 1,
		"rent": 2000, "initialPayment": 500, "paymentMode": "gpay",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var stay models.Stay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stay))

	w = do(t, r, http.MethodPost, "/api/stays/"+stay.ID+"/checkout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/houses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board []models.HouseBoardEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(t, board, len(models.DefaultHouses))

	w = do(t, r, http.MethodPost, "/api/houses/guest-house/checkin", token, gin.H{
		"guestName": "Anita", "phoneNumber": "98", "idNumber": "P9", "numberOfGuests": 2,
		"stayType": "day", "daysOfStay": 3, "rent": 3000, "initialPayment": 1000, "paymentMode": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var hb models.HouseBooking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hb))

	w = do(t, r, http.MethodPost, "/api/house-bookings/"+hb.ID+"/fees", token, gin.H{"description": "Electricity", "amount": 500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &hb))
	assert.Equal(t, "2500", hb.PendingAmount.String())

	w = do(t, r, http.MethodPost, "/api/house-bookings/"+hb.ID+"/checkout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodPost, "/api/house-bookings/"+hb.ID+"/payments", token, gin.H{"amount": 100, "mode": "cash"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
