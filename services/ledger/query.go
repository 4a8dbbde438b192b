package ledger

import (
	"sort"
	"strings"

	"innkeep/models"

	"github.com/shopspring/decimal"
)

// DescriptionFor is the description given to entries that were stored without one.
func DescriptionFor(t models.EntryType) string {
	switch t {
	case models.EntryExtension:
		return "Stay extension"
	case models.EntryInitial:
		return "Initial payment"
	default:
		return "Additional payment"
	}
}

// Normalize fills the display defaults of an entry read from storage.
func Normalize(e models.LedgerEntry) models.LedgerEntry {
	if e.Type == "" {
		e.Type = models.EntryPayment
	}
	if strings.TrimSpace(e.CustomerName) == "" {
		e.CustomerName = "Guest"
	}
	if strings.TrimSpace(e.RoomNumber) == "" {
		e.RoomNumber = "N/A"
	}
	if e.Status == "" {
		e.Status = models.StatusCompleted
	}
	if e.Description == "" {
		e.Description = DescriptionFor(e.Type)
	}
	return e
}

// MatchesType reports whether e passes the type filter. Empty and "all" match everything.
func MatchesType(e models.LedgerEntry, t string) bool {
	if t == "" || strings.EqualFold(t, "all") {
		return true
	}
	return string(e.Type) == t
}

// MatchesSearch is a case-insensitive substring match over customer name,
// description, room number and amount.
func MatchesSearch(e models.LedgerEntry, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.CustomerName), q) ||
		strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.RoomNumber), q) ||
		strings.Contains(e.Amount.String(), q)
}

// Filter keeps the entries matching both the type and the search query.
func Filter(entries []models.LedgerEntry, f models.PaymentFilter) []models.LedgerEntry {
	out := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Timestamp.After(*f.To) {
			continue
		}
		if MatchesType(e, f.Type) && MatchesSearch(e, f.Search) {
			out = append(out, e)
		}
	}
	return out
}

// NormalizeSort applies the default of newest first.
func NormalizeSort(s models.PaymentSort) models.PaymentSort {
	switch s.Field {
	case models.SortTimestamp, models.SortAmount, models.SortCustomerName, models.SortRoomNumber:
	default:
		s.Field = models.SortTimestamp
	}
	if s.Direction != models.SortAsc {
		s.Direction = models.SortDesc
	}
	return s
}

// Sort orders entries in place. Equal keys fall back to timestamp then id ascending,
// so the order is the same on every call.
func Sort(entries []models.LedgerEntry, s models.PaymentSort) {
	s = NormalizeSort(s)
	sort.SliceStable(entries, func(i, j int) bool {
		c := compare(entries[i], entries[j], s.Field)
		if c != 0 {
			if s.Direction == models.SortAsc {
				return c < 0
			}
			return c > 0
		}
		return tieBreak(entries[i], entries[j]) < 0
	})
}

func compare(a, b models.LedgerEntry, field models.SortField) int {
	switch field {
	case models.SortAmount:
		return a.Amount.Cmp(b.Amount)
	case models.SortCustomerName:
		return strings.Compare(a.CustomerName, b.CustomerName)
	case models.SortRoomNumber:
		return strings.Compare(a.RoomNumber, b.RoomNumber)
	default:
		return a.Timestamp.Compare(b.Timestamp)
	}
}

func tieBreak(a, b models.LedgerEntry) int {
	if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Totals sums the cash and gpay amounts of entries. Other modes are ignored.
func Totals(entries []models.LedgerEntry) (cash, gpay decimal.Decimal) {
	cash, gpay = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Mode {
		case models.ModeCash:
			cash = cash.Add(e.Amount)
		case models.ModeGPay:
			gpay = gpay.Add(e.Amount)
		}
	}
	return cash, gpay
}

// BuildReport normalises, filters, sorts and totals raw entries.
func BuildReport(raw []models.LedgerEntry, f models.PaymentFilter, s models.PaymentSort) *models.PaymentReport {
	normalized := make([]models.LedgerEntry, len(raw))
	for i, e := range raw {
		normalized[i] = Normalize(e)
	}
	filtered := Filter(normalized, f)
	Sort(filtered, s)
	cash, gpay := Totals(filtered)
	return &models.PaymentReport{
		Entries:   filtered,
		CashTotal: cash,
		GPayTotal: gpay,
		Count:     len(filtered),
	}
}
