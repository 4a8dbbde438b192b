package room

import (
	"context"
	"strings"
	"time"

	"innkeep/database"
	roomRepo "innkeep/database/repository/room"
	stayRepo "innkeep/database/repository/stay"
	"innkeep/models"
	"innkeep/services/dashboard"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RoomService manages the room inventory and guest stays.
type RoomService interface {
	CreateRoom(ctx context.Context, req models.CreateRoomRequest) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	UpdateRoomStatus(ctx context.Context, roomID string, status models.RoomStatus) error
	CheckInRoom(ctx context.Context, roomID string, form models.RoomCheckInRequest) (*models.Stay, error)
	ListStays(ctx context.Context, openOnly bool) ([]models.Stay, error)
	RecordStayPayment(ctx context.Context, stayID string, amount decimal.Decimal, mode models.PaymentMode) (*models.Stay, error)
	CheckOutRoom(ctx context.Context, stayID string) (*models.Stay, error)
	StayPayments(ctx context.Context, stayID string) ([]models.LedgerEntry, error)
}

// DefaultRoomService implements RoomService.
type DefaultRoomService struct {
	Rooms       roomRepo.RoomRepository
	Stays       stayRepo.StayRepository
	Ledger      ledger.LedgerService
	Tx          database.TxRunner
	Clock       utils.Clock
	Invalidator dashboard.Invalidator
	Retries     int
}

func (s *DefaultRoomService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultRoomService) retries() int {
	if s.Retries < 1 {
		return 3
	}
	return s.Retries
}

func (s *DefaultRoomService) invalidate(ctx context.Context) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx)
	}
}

func (s *DefaultRoomService) CreateRoom(ctx context.Context, req models.CreateRoomRequest) (*models.Room, error) {
	if req.RoomNumber < 1 {
		return nil, utils.NewValidationError("roomNumber", "must be at least 1")
	}
	if strings.TrimSpace(req.Floor) == "" {
		return nil, utils.NewValidationError("floor", "is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return nil, utils.NewValidationError("type", "is required")
	}
	status := req.Status
	if status == "" {
		status = models.RoomAvailable
	}
	if !status.Valid() {
		return nil, utils.NewValidationError("status", "unknown room status")
	}

	now := s.now()
	room := &models.Room{
		ID:         uuid.New().String(),
		RoomNumber: req.RoomNumber,
		Floor:      strings.TrimSpace(req.Floor),
		Type:       strings.TrimSpace(req.Type),
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return room, nil
}

func (s *DefaultRoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	return s.Rooms.GetAll(ctx)
}

func (s *DefaultRoomService) UpdateRoomStatus(ctx context.Context, roomID string, status models.RoomStatus) error {
	if !status.Valid() {
		return utils.NewValidationError("status", "unknown room status")
	}
	if err := s.Rooms.UpdateStatus(ctx, roomID, status); err != nil {
		return err
	}
	s.invalidate(ctx)
	utils.GetLogger().Info("Room status updated", zap.String("roomID", roomID), zap.String("status", string(status)))
	return nil
}
