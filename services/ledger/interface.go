package ledger

import (
	"context"
	"io"
	"time"

	"innkeep/database"
	ledgerRepo "innkeep/database/repository/ledger"
	"innkeep/models"
	"innkeep/services/dashboard"
	"innkeep/utils"
)

// LedgerService is the single source of money movements.
type LedgerService interface {
	// Post stores entries and bumps the daily totals atomically. When ctx carries a
	// transaction the entries join it.
	Post(ctx context.Context, entries ...models.LedgerEntry) ([]models.LedgerEntry, error)
	ListPayments(ctx context.Context, filter models.PaymentFilter, sort models.PaymentSort) (*models.PaymentReport, error)
	ExportPayments(ctx context.Context, w io.Writer, filter models.PaymentFilter, sort models.PaymentSort) error
	EntriesFor(ctx context.Context, ref models.LedgerRef) ([]models.LedgerEntry, error)
	ReconcileDay(ctx context.Context, day string) (*models.ReconcileResult, error)
	// RebuildDailyTotals reconciles every day that has entries.
	RebuildDailyTotals(ctx context.Context) ([]models.ReconcileResult, error)
}

// DefaultLedgerService implements LedgerService.
type DefaultLedgerService struct {
	Repo        ledgerRepo.LedgerRepository
	Tx          database.TxRunner
	Clock       utils.Clock
	Location    *time.Location
	Invalidator dashboard.Invalidator
}

func (s *DefaultLedgerService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultLedgerService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *DefaultLedgerService) invalidate(ctx context.Context) {
	if s.Invalidator != nil {
		s.Invalidator.Invalidate(ctx)
	}
}
