package ledger

import (
	"context"
	"strings"

	ledgerRepo "innkeep/database/repository/ledger"
	"innkeep/models"
)

func (s *DefaultLedgerService) ListPayments(ctx context.Context, filter models.PaymentFilter, sort models.PaymentSort) (*models.PaymentReport, error) {
	q := ledgerRepo.LedgerQuery{From: filter.From, To: filter.To}
	if filter.Type != "" && !strings.EqualFold(filter.Type, "all") {
		q.Type = filter.Type
	}
	raw, err := s.Repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return BuildReport(raw, filter, sort), nil
}

func (s *DefaultLedgerService) EntriesFor(ctx context.Context, ref models.LedgerRef) ([]models.LedgerEntry, error) {
	raw, err := s.Repo.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}
	out := make([]models.LedgerEntry, len(raw))
	for i, e := range raw {
		out[i] = Normalize(e)
	}
	return out, nil
}
