package memstore

import (
	"context"
	"sort"
	"time"

	ledgerRepo "innkeep/database/repository/ledger"
	"innkeep/models"
	"innkeep/utils"

	"github.com/shopspring/decimal"
)

type LedgerRepo struct{ s *Store }

func (s *Store) Ledger() ledgerRepo.LedgerRepository { return &LedgerRepo{s: s} }

func (r *LedgerRepo) Insert(ctx context.Context, entries []models.LedgerEntry) error {
	defer r.s.lock(ctx)()
	for _, e := range entries {
		if _, ok := r.s.entries[e.ID]; ok {
			return utils.NewConflictError("ledger entry already posted")
		}
	}
	for _, e := range entries {
		r.s.entries[e.ID] = e
	}
	return nil
}

func (r *LedgerRepo) Upsert(ctx context.Context, entry models.LedgerEntry) (bool, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.s.entries[entry.ID]; ok {
		return false, nil
	}
	r.s.entries[entry.ID] = entry
	return true, nil
}

func (r *LedgerRepo) Find(ctx context.Context, q ledgerRepo.LedgerQuery) ([]models.LedgerEntry, error) {
	return r.list(ctx, func(e models.LedgerEntry) bool {
		if q.Type != "" && string(e.Type) != q.Type {
			return false
		}
		if q.From != nil && e.Timestamp.Before(*q.From) {
			return false
		}
		if q.To != nil && e.Timestamp.After(*q.To) {
			return false
		}
		return true
	})
}

func (r *LedgerRepo) FindByRef(ctx context.Context, ref models.LedgerRef) ([]models.LedgerEntry, error) {
	return r.list(ctx, func(e models.LedgerEntry) bool { return e.Ref == ref })
}

func (r *LedgerRepo) list(ctx context.Context, keep func(models.LedgerEntry) bool) ([]models.LedgerEntry, error) {
	defer r.s.lock(ctx)()
	out := []models.LedgerEntry{}
	for _, e := range r.s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *LedgerRepo) Days(ctx context.Context) ([]string, error) {
	defer r.s.lock(ctx)()
	seen := map[string]bool{}
	days := []string{}
	for _, e := range r.s.entries {
		if e.Day != "" && !seen[e.Day] {
			seen[e.Day] = true
			days = append(days, e.Day)
		}
	}
	sort.Strings(days)
	return days, nil
}

func (r *LedgerRepo) SumDay(ctx context.Context, day string) (models.DailyTotal, error) {
	defer r.s.lock(ctx)()
	total := models.DailyTotal{Day: day, Cash: decimal.Zero, GPay: decimal.Zero}
	for _, e := range r.s.entries {
		if e.Day != day {
			continue
		}
		switch e.Mode {
		case models.ModeCash:
			total.Cash = total.Cash.Add(e.Amount)
		case models.ModeGPay:
			total.GPay = total.GPay.Add(e.Amount)
		default:
			continue
		}
		total.Count++
	}
	return total, nil
}

func (r *LedgerRepo) IncDailyTotal(ctx context.Context, day string, cash, gpay decimal.Decimal, count int) error {
	defer r.s.lock(ctx)()
	t, ok := r.s.dailyTotals[day]
	if !ok {
		t = models.DailyTotal{Day: day, Cash: decimal.Zero, GPay: decimal.Zero}
	}
	t.Cash = t.Cash.Add(cash)
	t.GPay = t.GPay.Add(gpay)
	t.Count += count
	t.UpdatedAt = time.Now()
	r.s.dailyTotals[day] = t
	return nil
}

func (r *LedgerRepo) SetDailyTotal(ctx context.Context, total models.DailyTotal) error {
	defer r.s.lock(ctx)()
	r.s.dailyTotals[total.Day] = total
	return nil
}

func (r *LedgerRepo) GetDailyTotal(ctx context.Context, day string) (models.DailyTotal, error) {
	defer r.s.lock(ctx)()
	if t, ok := r.s.dailyTotals[day]; ok {
		return t, nil
	}
	return models.DailyTotal{Day: day, Cash: decimal.Zero, GPay: decimal.Zero}, nil
}

func (r *LedgerRepo) GetDailyTotals(ctx context.Context, fromDay, toDay string) ([]models.DailyTotal, error) {
	defer r.s.lock(ctx)()
	out := []models.DailyTotal{}
	for day, t := range r.s.dailyTotals {
		if day >= fromDay && day <= toDay {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r *LedgerRepo) EnsureIndexes(context.Context) error { return nil }
