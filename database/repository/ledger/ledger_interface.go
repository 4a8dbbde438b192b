package ledgerRepo

import (
	"context"
	"time"

	"innkeep/models"

	"github.com/shopspring/decimal"
)

// LedgerQuery narrows entries at the storage level. Zero values match everything.
type LedgerQuery struct {
	Type string
	From *time.Time
	To   *time.Time
}

// LedgerRepository defines access to ledger entries and the per-day running totals.
type LedgerRepository interface {
	Insert(ctx context.Context, entries []models.LedgerEntry) error
	// Upsert inserts entry unless an entry with the same id exists. It reports whether
	// an insert happened.
	Upsert(ctx context.Context, entry models.LedgerEntry) (bool, error)
	Find(ctx context.Context, q LedgerQuery) ([]models.LedgerEntry, error)
	FindByRef(ctx context.Context, ref models.LedgerRef) ([]models.LedgerEntry, error)
	// Days lists every day bucket that has at least one entry.
	Days(ctx context.Context) ([]string, error)

	// SumDay recomputes the collected totals of day from the entries themselves.
	SumDay(ctx context.Context, day string) (models.DailyTotal, error)
	IncDailyTotal(ctx context.Context, day string, cash, gpay decimal.Decimal, count int) error
	SetDailyTotal(ctx context.Context, total models.DailyTotal) error
	GetDailyTotal(ctx context.Context, day string) (models.DailyTotal, error)
	// GetDailyTotals returns stored totals with fromDay <= day <= toDay.
	GetDailyTotals(ctx context.Context, fromDay, toDay string) ([]models.DailyTotal, error)

	EnsureIndexes(ctx context.Context) error
}
