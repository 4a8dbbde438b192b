package house

import (
	"context"
	"time"

	"innkeep/database"
	houseRepo "innkeep/database/repository/house"
	"innkeep/models"
	"innkeep/services/dashboard"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/shopspring/decimal"
)

// MonthDays is the length of a monthly house stay.
const MonthDays = 30

// HouseService runs the house occupancy state machine:
// Available -> Occupied (CheckIn) -> Available (CheckOut).
type HouseService interface {
	EnsureHouses(ctx context.Context) error
	Board(ctx context.Context) ([]models.HouseBoardEntry, error)
	OpenBookings(ctx context.Context) ([]models.HouseBooking, error)
	CheckIn(ctx context.Context, houseID string, form models.HouseCheckInRequest) (*models.HouseBooking, error)
	Extend(ctx context.Context, bookingID string, additionalDays int, rentForDays decimal.Decimal) (*models.HouseBooking, error)
	AddExtraFee(ctx context.Context, bookingID, description string, amount decimal.Decimal) (*models.HouseBooking, error)
	RecordPayment(ctx context.Context, bookingID string, amount decimal.Decimal, mode models.PaymentMode) (*models.HouseBooking, error)
	CheckOut(ctx context.Context, bookingID string) (*models.HouseBooking, error)
}

// DefaultHouseService implements HouseService.
type DefaultHouseService struct {
	Repo        houseRepo.HouseRepository
	Ledger      ledger.LedgerService
	Tx          database.TxRunner
	Clock       utils.Clock
	Invalidator dashboard.Invalidator
	Retries     int
}

func (s *DefaultHouseService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultHouseService) retries() int {
	if s.Retries < 1 {
		return 3
	}
	return s.Retries
}

func (s *DefaultHouseService) invalidate(ctx context.Context) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx)
	}
}

// EnsureHouses seeds the fixed set of houses.
func (s *DefaultHouseService) EnsureHouses(ctx context.Context) error {
	return s.Repo.SeedHouses(ctx, models.DefaultHouses)
}

func (s *DefaultHouseService) OpenBookings(ctx context.Context) ([]models.HouseBooking, error) {
	return s.Repo.GetOpenBookings(ctx)
}

// Board lists every house with its open booking. Houses without one are available.
func (s *DefaultHouseService) Board(ctx context.Context) ([]models.HouseBoardEntry, error) {
	houses, err := s.Repo.GetHouses(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.Repo.GetOpenBookings(ctx)
	if err != nil {
		return nil, err
	}

	byHouse := make(map[string]models.HouseBooking, len(open))
	for _, b := range open {
		byHouse[b.HouseID] = b
	}

	board := make([]models.HouseBoardEntry, 0, len(houses))
	for _, h := range houses {
		entry := models.HouseBoardEntry{House: h, Status: "available"}
		if b, ok := byHouse[h.ID]; ok {
			b := b
			entry.Status = "booked"
			entry.Booking = &b
		}
		board = append(board, entry)
	}
	return board, nil
}
