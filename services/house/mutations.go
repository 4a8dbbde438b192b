package house

import (
	"context"
	"fmt"
	"strings"
	"time"

	"innkeep/models"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// mutation edits an open booking in memory and returns the ledger entry to post with
// it, if any.
type mutation func(b *models.HouseBooking, now time.Time) (*models.LedgerEntry, error)

// mutate applies fn to a fresh read of the booking and writes it back with a version
// check, together with the entry fn returns. A lost version check re-reads and
// re-applies.
func (s *DefaultHouseService) mutate(ctx context.Context, bookingID, op string, fn mutation) (*models.HouseBooking, error) {
	var updated *models.HouseBooking
	err := utils.RetryOnStale(s.retries(), func() error {
		b, err := s.Repo.GetBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.IsCheckedOut {
			return utils.NewConflictError("house booking is already checked out")
		}

		now := s.now()
		entry, err := fn(b, now)
		if err != nil {
			return err
		}

		err = s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.Repo.UpdateBooking(txCtx, b); err != nil {
				return err
			}
			if entry == nil {
				return nil
			}
			entry.Timestamp = now
			entry.CustomerName = b.GuestName
			entry.RoomNumber = b.HouseName
			entry.Ref = models.LedgerRef{Kind: models.RefHouseBooking, ID: b.ID}
			_, err := s.Ledger.Post(txCtx, *entry)
			return err
		})
		if err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		utils.GetLogger().Warn("House booking update failed",
			zap.String("op", op), zap.String("bookingID", bookingID), zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// Extend lengthens the stay and adds the extra rent to what is owed.
func (s *DefaultHouseService) Extend(ctx context.Context, bookingID string, additionalDays int, rentForDays decimal.Decimal) (*models.HouseBooking, error) {
	if additionalDays < 1 {
		return nil, utils.NewValidationError("additionalDays", "must be at least 1")
	}
	if rentForDays.IsNegative() {
		return nil, utils.NewValidationError("rentForDays", "cannot be negative")
	}

	return s.mutate(ctx, bookingID, "extend", func(b *models.HouseBooking, now time.Time) (*models.LedgerEntry, error) {
		b.Extensions = append(b.Extensions, models.Extension{
			AdditionalDays: additionalDays,
			RentForDays:    rentForDays,
			Timestamp:      now,
		})
		b.CheckOutDate = b.CheckOutDate.AddDate(0, 0, additionalDays)
		b.DaysOfStay += additionalDays
		b.Rent = b.Rent.Add(rentForDays)
		b.PendingAmount = b.PendingAmount.Add(rentForDays)

		return &models.LedgerEntry{
			Amount:      rentForDays,
			Type:        models.EntryExtension,
			Mode:        models.ModeNone,
			Description: fmt.Sprintf("Extension: %d days", additionalDays),
		}, nil
	})
}

// AddExtraFee charges a one-off fee against the booking.
func (s *DefaultHouseService) AddExtraFee(ctx context.Context, bookingID, description string, amount decimal.Decimal) (*models.HouseBooking, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, utils.NewValidationError("description", "is required")
	}
	if !amount.IsPositive() {
		return nil, utils.NewValidationError("amount", "must be greater than 0")
	}

	return s.mutate(ctx, bookingID, "extra-fee", func(b *models.HouseBooking, now time.Time) (*models.LedgerEntry, error) {
		b.ExtraFees = append(b.ExtraFees, models.ExtraFee{
			Description: description,
			Amount:      amount,
			Timestamp:   now,
		})
		b.Rent = b.Rent.Add(amount)
		b.PendingAmount = b.PendingAmount.Add(amount)

		return &models.LedgerEntry{
			Amount:      amount,
			Type:        models.EntryExtraFee,
			Mode:        models.ModeNone,
			Description: description,
		}, nil
	})
}

// RecordPayment takes money against the pending amount.
func (s *DefaultHouseService) RecordPayment(ctx context.Context, bookingID string, amount decimal.Decimal, mode models.PaymentMode) (*models.HouseBooking, error) {
	if !amount.IsPositive() {
		return nil, utils.NewValidationError("amount", "must be greater than 0")
	}
	if !mode.Collected() {
		return nil, utils.NewValidationError("mode", "must be cash or gpay")
	}

	return s.mutate(ctx, bookingID, "payment", func(b *models.HouseBooking, now time.Time) (*models.LedgerEntry, error) {
		if amount.GreaterThan(b.PendingAmount) {
			return nil, utils.NewValidationError("amount", fmt.Sprintf("exceeds pending amount %s", b.PendingAmount.String()))
		}
		b.Payments = append(b.Payments, models.HousePayment{Amount: amount, Mode: mode, Timestamp: now})
		b.PendingAmount = b.PendingAmount.Sub(amount)

		return &models.LedgerEntry{
			Amount:      amount,
			Type:        models.EntryPayment,
			Mode:        mode,
			Description: "Payment received",
		}, nil
	})
}

// CheckOut closes the booking and frees the house.
func (s *DefaultHouseService) CheckOut(ctx context.Context, bookingID string) (*models.HouseBooking, error) {
	return s.mutate(ctx, bookingID, "checkout", func(b *models.HouseBooking, now time.Time) (*models.LedgerEntry, error) {
		b.IsCheckedOut = true
		b.CheckedOutAt = &now
		return nil, nil
	})
}
