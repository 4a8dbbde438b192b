package room

import (
	"context"
	"fmt"
	"strings"

	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckInRoom occupies an available room, opens a stay and posts the initial payment.
func (s *DefaultRoomService) CheckInRoom(ctx context.Context, roomID string, form models.RoomCheckInRequest) (*models.Stay, error) {
	if err := validateStay(form); err != nil {
		return nil, err
	}

	room, err := s.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stay := &models.Stay{
		ID:             uuid.New().String(),
		RoomID:         room.ID,
		RoomNumber:     room.RoomNumber,
		GuestName:      strings.TrimSpace(form.GuestName),
		Mobile:         strings.TrimSpace(form.Mobile),
		IDNumber:       strings.TrimSpace(form.IDNumber),
		NumberOfGuests: form.NumberOfGuests,
		Rent:           form.Rent,
		InitialPayment: form.InitialPayment,
		PaymentMode:    form.PaymentMode,
		PendingAmount:  form.Rent.Sub(form.InitialPayment),
		CheckedInAt:    now,
		Version:        1,
	}

	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Rooms.UpdateStatus(txCtx, room.ID, models.RoomOccupied, models.RoomAvailable); err != nil {
			return err
		}
		if err := s.Stays.Create(txCtx, stay); err != nil {
			return err
		}
		_, err := s.Ledger.Post(txCtx, models.LedgerEntry{
			Amount:       stay.InitialPayment,
			Timestamp:    now,
			CustomerName: stay.GuestName,
			RoomNumber:   fmt.Sprint(stay.RoomNumber),
			Type:         models.EntryInitial,
			Mode:         stay.PaymentMode,
			Description:  "Initial payment",
			Ref:          models.LedgerRef{Kind: models.RefStay, ID: stay.ID},
		})
		return err
	})
	if err != nil {
		utils.GetLogger().Warn("Room check-in failed", zap.String("roomID", roomID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)
	utils.GetLogger().Info("Room checked in", zap.String("roomID", room.ID), zap.String("stayID", stay.ID))
	return stay, nil
}

func (s *DefaultRoomService) ListStays(ctx context.Context, openOnly bool) ([]models.Stay, error) {
	if openOnly {
		return s.Stays.GetOpen(ctx)
	}
	return s.Stays.GetAll(ctx)
}

// RecordStayPayment takes money against the stay's pending amount.
func (s *DefaultRoomService) RecordStayPayment(ctx context.Context, stayID string, amount decimal.Decimal, mode models.PaymentMode) (*models.Stay, error) {
	if !amount.IsPositive() {
		return nil, utils.NewValidationError("amount", "must be greater than 0")
	}
	if !mode.Collected() {
		return nil, utils.NewValidationError("mode", "must be cash or gpay")
	}

	var updated *models.Stay
	err := utils.RetryOnStale(s.retries(), func() error {
		stay, err := s.Stays.GetByID(ctx, stayID)
		if err != nil {
			return err
		}
		if stay.IsCheckedOut {
			return utils.NewConflictError("stay is already checked out")
		}
		if amount.GreaterThan(stay.PendingAmount) {
			return utils.NewValidationError("amount", fmt.Sprintf("exceeds pending amount %s", stay.PendingAmount.String()))
		}

		now := s.now()
		stay.PendingAmount = stay.PendingAmount.Sub(amount)
		err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.Stays.Update(txCtx, stay); err != nil {
				return err
			}
			_, err := s.Ledger.Post(txCtx, models.LedgerEntry{
				Amount:       amount,
				Timestamp:    now,
				CustomerName: stay.GuestName,
				RoomNumber:   fmt.Sprint(stay.RoomNumber),
				Type:         models.EntryPayment,
				Mode:         mode,
				Description:  "Additional payment",
				Ref:          models.LedgerRef{Kind: models.RefStay, ID: stay.ID},
			})
			return err
		})
		if err != nil {
			return err
		}
		updated = stay
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// CheckOutRoom closes the stay and sends the room to cleaning.
func (s *DefaultRoomService) CheckOutRoom(ctx context.Context, stayID string) (*models.Stay, error) {
	var updated *models.Stay
	err := utils.RetryOnStale(s.retries(), func() error {
		stay, err := s.Stays.GetByID(ctx, stayID)
		if err != nil {
			return err
		}
		if stay.IsCheckedOut {
			return utils.NewConflictError("stay is already checked out")
		}

		now := s.now()
		stay.IsCheckedOut = true
		stay.CheckedOutAt = &now
		err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.Stays.Update(txCtx, stay); err != nil {
				return err
			}
			return s.Rooms.UpdateStatus(txCtx, stay.RoomID, models.RoomCleaning)
		})
		if err != nil {
			return err
		}
		updated = stay
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	utils.GetLogger().Info("Room checked out", zap.String("stayID", stayID))
	return updated, nil
}

// StayPayments lists the ledger entries posted for a stay.
func (s *DefaultRoomService) StayPayments(ctx context.Context, stayID string) ([]models.LedgerEntry, error) {
	if _, err := s.Stays.GetByID(ctx, stayID); err != nil {
		return nil, err
	}
	return s.Ledger.EntriesFor(ctx, models.LedgerRef{Kind: models.RefStay, ID: stayID})
}

func validateStay(f models.RoomCheckInRequest) error {
	if strings.TrimSpace(f.GuestName) == "" {
		return utils.NewValidationError("guestName", "is required")
	}
	if strings.TrimSpace(f.Mobile) == "" {
		return utils.NewValidationError("mobile", "is required")
	}
	if strings.TrimSpace(f.IDNumber) == "" {
		return utils.NewValidationError("idNumber", "is required")
	}
	if f.NumberOfGuests < 1 {
		return utils.NewValidationError("numberOfGuests", "must be at least 1")
	}
	if !f.Rent.IsPositive() {
		return utils.NewValidationError("rent", "must be greater than 0")
	}
	if f.InitialPayment.IsNegative() || f.InitialPayment.GreaterThan(f.Rent) {
		return utils.NewValidationError("initialPayment", "must be between 0 and rent")
	}
	if !f.PaymentMode.Collected() {
		return utils.NewValidationError("paymentMode", "must be cash or gpay")
	}
	return nil
}
