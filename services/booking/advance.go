package booking

import (
	"context"
	"time"

	"innkeep/database"
	advanceRepo "innkeep/database/repository/advance"
	"innkeep/models"
	"innkeep/services/availability"
	"innkeep/services/dashboard"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/shopspring/decimal"
)

// PageSize is the number of advance bookings per listing page.
const PageSize = 20

// AdvanceBookingService manages reservations paid for ahead of the stay date.
type AdvanceBookingService interface {
	CreateAdvanceBooking(ctx context.Context, details models.AdvanceBookingDetails, rooms []models.RoomLineItem) (string, error)
	CancelBooking(ctx context.Context, bookingID string, refundAmount decimal.Decimal) error
	CompleteBooking(ctx context.Context, bookingID string) error
	GetBooking(ctx context.Context, bookingID string) (*models.AdvanceBooking, error)
	ListBookings(ctx context.Context, search string, page int) (*models.BookingPage, error)
}

// DefaultAdvanceBookingService implements AdvanceBookingService.
type DefaultAdvanceBookingService struct {
	Repo         advanceRepo.AdvanceBookingRepository
	Availability availability.AvailabilityService
	Ledger       ledger.LedgerService
	Tx           database.TxRunner
	Clock        utils.Clock
	Invalidator  dashboard.Invalidator
	// Retries bounds attempts after a lost version check.
	Retries int
}

func (s *DefaultAdvanceBookingService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultAdvanceBookingService) retries() int {
	if s.Retries < 1 {
		return 3
	}
	return s.Retries
}

func (s *DefaultAdvanceBookingService) invalidate(ctx context.Context) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx)
	}
}

func (s *DefaultAdvanceBookingService) GetBooking(ctx context.Context, bookingID string) (*models.AdvanceBooking, error) {
	return s.Repo.GetByID(ctx, bookingID)
}
