package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateAdvanceBooking validates the request against current availability, then
// stores the booking, its room claims and its advance ledger entry in one transaction.
func (s *DefaultAdvanceBookingService) CreateAdvanceBooking(
	ctx context.Context,
	details models.AdvanceBookingDetails,
	rooms []models.RoomLineItem,
) (string, error) {
	logger := utils.GetLogger()

	if err := validateDetails(details, rooms); err != nil {
		return "", err
	}

	available, err := s.Availability.FindAvailableRooms(ctx, details.DateOfBooking, details.RoomType)
	if err != nil {
		return "", err
	}
	byID := make(map[string]models.Room, len(available))
	for _, r := range available {
		byID[r.ID] = r
	}

	items := make([]models.RoomLineItem, len(rooms))
	roomIDs := make([]string, len(rooms))
	for i, item := range rooms {
		room, ok := byID[item.RoomID]
		if !ok {
			return "", utils.NewValidationError("rooms", fmt.Sprintf("room %s is not available on %s", item.RoomID, details.DateOfBooking))
		}
		item.RoomNumber = room.RoomNumber
		items[i] = item
		roomIDs[i] = item.RoomID
	}

	now := s.now()
	booking := &models.AdvanceBooking{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(details.Name),
		Mobile:        strings.TrimSpace(details.Mobile),
		Aadhar:        strings.TrimSpace(details.Aadhar),
		DateOfBooking: details.DateOfBooking,
		RoomType:      strings.TrimSpace(details.RoomType),
		NumberOfRooms: details.NumberOfRooms,
		AdvanceAmount: details.AdvanceAmount,
		PaymentMode:   details.PaymentMode,
		Rooms:         items,
		Status:        models.BookingActive,
		CreatedAt:     now,
		RefundAmount:  decimal.Zero,
		Version:       1,
	}

	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repo.Create(txCtx, booking); err != nil {
			return err
		}
		if err := s.Repo.ClaimRooms(txCtx, booking.ID, booking.DateOfBooking, roomIDs); err != nil {
			return err
		}
		_, err := s.Ledger.Post(txCtx, models.LedgerEntry{
			Amount:       booking.AdvanceAmount,
			Timestamp:    now,
			CustomerName: booking.Name,
			RoomNumber:   JoinRoomNumbers(booking.RoomNumbers()),
			Type:         models.EntryAdvance,
			Mode:         booking.PaymentMode,
			Description:  fmt.Sprintf("Advance payment for %d room(s)", booking.NumberOfRooms),
			Ref:          models.LedgerRef{Kind: models.RefAdvanceBooking, ID: booking.ID},
		})
		return err
	})
	if err != nil {
		logger.Error("Failed to create advance booking", zap.String("date", details.DateOfBooking), zap.Error(err))
		return "", err
	}

	s.invalidate(ctx)
	logger.Info("Advance booking created",
		zap.String("bookingID", booking.ID),
		zap.String("date", booking.DateOfBooking),
		zap.Int("rooms", booking.NumberOfRooms))
	return booking.ID, nil
}

func validateDetails(d models.AdvanceBookingDetails, rooms []models.RoomLineItem) error {
	required := []struct{ field, value string }{
		{"name", d.Name},
		{"mobile", d.Mobile},
		{"aadhar", d.Aadhar},
		{"date_of_booking", d.DateOfBooking},
		{"room_type", d.RoomType},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return utils.NewValidationError(r.field, "is required")
		}
	}
	if _, err := time.Parse(utils.DayLayout, d.DateOfBooking); err != nil {
		return utils.NewValidationError("date_of_booking", "expected YYYY-MM-DD")
	}
	if d.NumberOfRooms < 1 {
		return utils.NewValidationError("number_of_rooms", "must be at least 1")
	}
	if len(rooms) != d.NumberOfRooms {
		return utils.NewValidationError("rooms", fmt.Sprintf("selected %d room(s) but number_of_rooms is %d", len(rooms), d.NumberOfRooms))
	}

	seen := make(map[string]bool, len(rooms))
	for i, r := range rooms {
		if r.RoomID == "" {
			return utils.NewValidationError(fmt.Sprintf("rooms[%d].roomId", i), "is required")
		}
		if seen[r.RoomID] {
			return utils.NewValidationError("rooms", fmt.Sprintf("room %s selected twice", r.RoomID))
		}
		seen[r.RoomID] = true
		if !r.Price.IsPositive() {
			return utils.NewValidationError(fmt.Sprintf("rooms[%d].price", i), "must be greater than 0")
		}
		if r.Persons < 1 {
			return utils.NewValidationError(fmt.Sprintf("rooms[%d].persons", i), "must be at least 1")
		}
	}

	if !d.AdvanceAmount.IsPositive() {
		return utils.NewValidationError("advance_amount", "must be greater than 0")
	}
	if d.PaymentMode != models.ModeCash && d.PaymentMode != models.ModeGPay {
		return utils.NewValidationError("payment_mode", "must be cash or gpay")
	}
	return nil
}

// JoinRoomNumbers renders room numbers as "101, 102". An empty list is "N/A".
func JoinRoomNumbers(numbers []int) string {
	if len(numbers) == 0 {
		return "N/A"
	}
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
