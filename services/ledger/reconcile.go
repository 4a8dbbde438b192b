package ledger

import (
	"context"
	"time"

	"innkeep/models"
	"innkeep/utils"

	"go.uber.org/zap"
)

// ReconcileDay recomputes the collected totals of day from the ledger and overwrites
// the stored running total when they differ.
func (s *DefaultLedgerService) ReconcileDay(ctx context.Context, day string) (*models.ReconcileResult, error) {
	if _, err := time.Parse(utils.DayLayout, day); err != nil {
		return nil, utils.NewValidationError("day", "expected YYYY-MM-DD")
	}

	var result models.ReconcileResult
	err := s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		stored, err := s.Repo.GetDailyTotal(txCtx, day)
		if err != nil {
			return err
		}
		computed, err := s.Repo.SumDay(txCtx, day)
		if err != nil {
			return err
		}

		result = models.ReconcileResult{Day: day, Stored: stored, Computed: computed}
		result.Drift = !stored.Cash.Equal(computed.Cash) ||
			!stored.GPay.Equal(computed.GPay) ||
			stored.Count != computed.Count
		if !result.Drift {
			return nil
		}
		computed.UpdatedAt = s.now()
		return s.Repo.SetDailyTotal(txCtx, computed)
	})
	if err != nil {
		return nil, err
	}

	if result.Drift {
		utils.ReconcileDrift.Inc()
		utils.GetLogger().Warn("Daily total drift corrected",
			zap.String("day", day),
			zap.String("storedCash", result.Stored.Cash.String()),
			zap.String("computedCash", result.Computed.Cash.String()),
			zap.String("storedGPay", result.Stored.GPay.String()),
			zap.String("computedGPay", result.Computed.GPay.String()),
		)
		s.invalidate(ctx)
	}
	return &result, nil
}

func (s *DefaultLedgerService) RebuildDailyTotals(ctx context.Context) ([]models.ReconcileResult, error) {
	days, err := s.Repo.Days(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]models.ReconcileResult, 0, len(days))
	for _, day := range days {
		r, err := s.ReconcileDay(ctx, day)
		if err != nil {
			return results, err
		}
		results = append(results, *r)
	}
	return results, nil
}
