package booking

import (
	"context"
	"fmt"

	"innkeep/models"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CancelBooking moves an active booking to cancelled, releases its rooms and, when
// refundAmount is positive, posts the refund to the ledger.
func (s *DefaultAdvanceBookingService) CancelBooking(ctx context.Context, bookingID string, refundAmount decimal.Decimal) error {
	logger := utils.GetLogger()

	err := utils.RetryOnStale(s.retries(), func() error {
		booking, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingActive {
			return utils.NewConflictError(fmt.Sprintf("booking is %s", booking.Status))
		}
		if refundAmount.IsNegative() || refundAmount.GreaterThan(booking.AdvanceAmount) {
			return utils.NewValidationError("refund_amount", fmt.Sprintf("must be between 0 and %s", booking.AdvanceAmount.String()))
		}

		now := s.now()
		booking.Status = models.BookingCancelled
		booking.CancelledAt = &now
		booking.RefundAmount = refundAmount

		return s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.Repo.Update(txCtx, booking); err != nil {
				return err
			}
			if err := s.Repo.ReleaseClaims(txCtx, booking.ID); err != nil {
				return err
			}
			if !refundAmount.IsPositive() {
				return nil
			}
			_, err := s.Ledger.Post(txCtx, models.LedgerEntry{
				Amount:       refundAmount.Neg(),
				Timestamp:    now,
				CustomerName: booking.Name,
				RoomNumber:   JoinRoomNumbers(booking.RoomNumbers()),
				Type:         models.EntryRefund,
				Mode:         refundMode(booking.PaymentMode),
				Description:  fmt.Sprintf("Refund for cancelled advance booking - %s (%s)", booking.Name, booking.DateOfBooking),
				Ref:          models.LedgerRef{Kind: models.RefAdvanceBooking, ID: booking.ID},
			})
			return err
		})
	})
	if err != nil {
		logger.Warn("Failed to cancel advance booking", zap.String("bookingID", bookingID), zap.Error(err))
		return err
	}

	s.invalidate(ctx)
	logger.Info("Advance booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("refund", refundAmount.String()))
	return nil
}

// CompleteBooking marks an active booking as fulfilled and frees its room claims.
func (s *DefaultAdvanceBookingService) CompleteBooking(ctx context.Context, bookingID string) error {
	return utils.RetryOnStale(s.retries(), func() error {
		booking, err := s.Repo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingActive {
			return utils.NewConflictError(fmt.Sprintf("booking is %s", booking.Status))
		}

		now := s.now()
		booking.Status = models.BookingCompleted
		booking.CompletedAt = &now

		return s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.Repo.Update(txCtx, booking); err != nil {
				return err
			}
			return s.Repo.ReleaseClaims(txCtx, booking.ID)
		})
	})
}

// refundMode returns the mode the advance was paid in. Legacy bookings without one are
// refunded in cash.
func refundMode(m models.PaymentMode) models.PaymentMode {
	if m.Collected() {
		return m
	}
	return models.ModeCash
}
