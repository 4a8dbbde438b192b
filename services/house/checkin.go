package house

import (
	"context"
	"strings"

	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckIn opens a booking on an unoccupied house and posts the initial payment.
func (s *DefaultHouseService) CheckIn(ctx context.Context, houseID string, form models.HouseCheckInRequest) (*models.HouseBooking, error) {
	logger := utils.GetLogger()

	days, err := validateCheckIn(form)
	if err != nil {
		return nil, err
	}

	house, err := s.Repo.GetHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &models.HouseBooking{
		ID:             uuid.New().String(),
		HouseID:        house.ID,
		HouseName:      house.Name,
		GuestName:      strings.TrimSpace(form.GuestName),
		PhoneNumber:    strings.TrimSpace(form.PhoneNumber),
		IDNumber:       strings.TrimSpace(form.IDNumber),
		NumberOfGuests: form.NumberOfGuests,
		DaysOfStay:     days,
		Rent:           form.Rent,
		InitialPayment: form.InitialPayment,
		PaymentMode:    form.PaymentMode,
		CheckedInAt:    now,
		CheckOutDate:   now.AddDate(0, 0, days),
		PendingAmount:  form.Rent.Sub(form.InitialPayment),
		ExtraFees:      []models.ExtraFee{},
		Extensions:     []models.Extension{},
		Payments:       []models.HousePayment{},
		Version:        1,
	}

	err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}
		_, err := s.Ledger.Post(txCtx, models.LedgerEntry{
			Amount:       booking.InitialPayment,
			Timestamp:    now,
			CustomerName: booking.GuestName,
			RoomNumber:   booking.HouseName,
			Type:         models.EntryInitial,
			Mode:         booking.PaymentMode,
			Description:  "Initial payment at check-in",
			Ref:          models.LedgerRef{Kind: models.RefHouseBooking, ID: booking.ID},
		})
		return err
	})
	if err != nil {
		logger.Warn("House check-in failed", zap.String("houseID", houseID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("House checked in",
		zap.String("houseID", house.ID),
		zap.String("bookingID", booking.ID),
		zap.Int("days", days))
	return booking, nil
}

// validateCheckIn returns the length of stay in days.
func validateCheckIn(f models.HouseCheckInRequest) (int, error) {
	if strings.TrimSpace(f.GuestName) == "" {
		return 0, utils.NewValidationError("guestName", "is required")
	}
	if strings.TrimSpace(f.PhoneNumber) == "" {
		return 0, utils.NewValidationError("phoneNumber", "is required")
	}
	if strings.TrimSpace(f.IDNumber) == "" {
		return 0, utils.NewValidationError("idNumber", "is required")
	}
	if f.NumberOfGuests < 1 {
		return 0, utils.NewValidationError("numberOfGuests", "must be at least 1")
	}

	days := f.DaysOfStay
	if f.StayType == "month" {
		days = MonthDays
	}
	if days < 1 {
		return 0, utils.NewValidationError("daysOfStay", "must be at least 1")
	}

	if !f.Rent.IsPositive() {
		return 0, utils.NewValidationError("rent", "must be greater than 0")
	}
	if f.InitialPayment.LessThan(decimal.Zero) || f.InitialPayment.GreaterThan(f.Rent) {
		return 0, utils.NewValidationError("initialPayment", "must be between 0 and rent")
	}
	if f.PaymentMode != models.ModeCash && f.PaymentMode != models.ModeGPay {
		return 0, utils.NewValidationError("paymentMode", "must be cash or gpay")
	}
	return days, nil
}
