package ledger

import (
	"context"
	"fmt"
	"sort"

	"innkeep/models"
	"innkeep/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *DefaultLedgerService) Post(ctx context.Context, entries ...models.LedgerEntry) ([]models.LedgerEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	prepared := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		prepared = append(prepared, s.prepare(e))
	}

	err := s.Tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repo.Insert(txCtx, prepared); err != nil {
			return err
		}
		for _, d := range collectedByDay(prepared) {
			if err := s.Repo.IncDailyTotal(txCtx, d.Day, d.Cash, d.GPay, d.Count); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, e := range prepared {
		utils.LedgerEntriesPosted.WithLabelValues(string(e.Type)).Inc()
	}
	utils.GetLogger().Debug("Ledger entries posted", zap.Int("count", len(prepared)))
	return prepared, nil
}

func (s *DefaultLedgerService) prepare(e models.LedgerEntry) models.LedgerEntry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	e.Day = utils.Day(e.Timestamp, s.location())
	if e.Status == "" {
		e.Status = models.StatusCompleted
	}
	if e.Source == "" {
		e.Source = models.SourceService
	}
	if e.Description == "" {
		e.Description = DescriptionFor(e.Type)
	}
	return e
}

func validateEntry(e models.LedgerEntry) error {
	switch e.Mode {
	case models.ModeCash, models.ModeGPay, models.ModeNone:
	default:
		return utils.NewValidationError("mode", fmt.Sprintf("unknown payment mode %q", e.Mode))
	}
	switch e.Type {
	case models.EntryRefund:
		if !e.Amount.IsNegative() {
			return utils.NewValidationError("amount", "refund entries carry a negative amount")
		}
	case models.EntryAdvance, models.EntryInitial, models.EntryExtension, models.EntryExtraFee,
		models.EntryCheckIn, models.EntryPayment:
		if e.Amount.IsNegative() {
			return utils.NewValidationError("amount", fmt.Sprintf("%s entries cannot be negative", e.Type))
		}
	default:
		return utils.NewValidationError("type", fmt.Sprintf("unknown entry type %q", e.Type))
	}
	if e.Ref.Kind == "" || e.Ref.ID == "" {
		return utils.NewValidationError("ref", "entry must reference the document it was posted for")
	}
	return nil
}

// collectedByDay sums cash and gpay amounts per day bucket. Entries in other modes are
// skipped.
func collectedByDay(entries []models.LedgerEntry) []models.DailyTotal {
	byDay := map[string]*models.DailyTotal{}
	for _, e := range entries {
		if !e.Mode.Collected() {
			continue
		}
		t, ok := byDay[e.Day]
		if !ok {
			t = &models.DailyTotal{Day: e.Day, Cash: decimal.Zero, GPay: decimal.Zero}
			byDay[e.Day] = t
		}
		if e.Mode == models.ModeCash {
			t.Cash = t.Cash.Add(e.Amount)
		} else {
			t.GPay = t.GPay.Add(e.Amount)
		}
		t.Count++
	}

	out := make([]models.DailyTotal, 0, len(byDay))
	for _, t := range byDay {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
