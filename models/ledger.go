package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryAdvance   EntryType = "advance"
	EntryInitial   EntryType = "initial"
	EntryExtension EntryType = "extension"
	EntryExtraFee  EntryType = "extra-fee"
	EntryRefund    EntryType = "refund"
	EntryCheckIn   EntryType = "check-in"
	EntryPayment   EntryType = "payment"
)

type PaymentMode string

const (
	ModeCash PaymentMode = "cash"
	ModeGPay PaymentMode = "gpay"
	// ModeNone marks charges that move no money, such as extensions and extra fees.
	ModeNone PaymentMode = "n/a"
)

// Collected reports whether money in this mode counts towards cash and gpay totals.
func (m PaymentMode) Collected() bool {
	return m == ModeCash || m == ModeGPay
}

type RefKind string

const (
	RefStay           RefKind = "stay"
	RefHouseBooking   RefKind = "house_booking"
	RefAdvanceBooking RefKind = "advance_booking"
	RefLegacy         RefKind = "legacy"
)

// LedgerRef points at the document an entry was posted for.
type LedgerRef struct {
	Kind RefKind `bson:"kind" json:"kind"`
	ID   string  `bson:"id" json:"id"`
}

const (
	SourceService = "service"
	SourceLegacy  = "legacy-import"

	StatusCompleted = "completed"
)

// LedgerEntry is a single money movement. Refunds carry a negative amount.
type LedgerEntry struct {
	ID           string          `bson:"id" json:"id"`
	Amount       decimal.Decimal `bson:"amount" json:"amount"`
	Timestamp    time.Time       `bson:"timestamp" json:"timestamp"`
	Day          string          `bson:"day" json:"day"`
	CustomerName string          `bson:"customerName" json:"customerName"`
	RoomNumber   string          `bson:"roomNumber" json:"roomNumber"`
	Type         EntryType       `bson:"type" json:"type"`
	Mode         PaymentMode     `bson:"mode" json:"mode"`
	Description  string          `bson:"description" json:"description"`
	Status       string          `bson:"status" json:"status"`
	Ref          LedgerRef       `bson:"ref" json:"ref"`
	Source       string          `bson:"source" json:"source"`
}

// PaymentFilter narrows a ledger listing. From and To bound the timestamp, inclusive.
type PaymentFilter struct {
	Type   string     `form:"type"`
	Search string     `form:"search"`
	From   *time.Time `form:"-"`
	To     *time.Time `form:"-"`
}

type SortField string

const (
	SortTimestamp    SortField = "timestamp"
	SortAmount       SortField = "amount"
	SortCustomerName SortField = "customerName"
	SortRoomNumber   SortField = "roomNumber"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

type PaymentSort struct {
	Field     SortField     `form:"sortBy"`
	Direction SortDirection `form:"direction"`
}

// PaymentReport is a filtered, sorted ledger view with totals over the filtered set.
type PaymentReport struct {
	Entries   []LedgerEntry   `json:"entries"`
	CashTotal decimal.Decimal `json:"cashTotal"`
	GPayTotal decimal.Decimal `json:"gpayTotal"`
	Count     int             `json:"count"`
}

// DailyTotal is the running sum of collected money for one business day.
type DailyTotal struct {
	Day       string          `bson:"day" json:"day"`
	Cash      decimal.Decimal `bson:"cash" json:"cash"`
	GPay      decimal.Decimal `bson:"gpay" json:"gpay"`
	Count     int             `bson:"count" json:"count"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ReconcileResult compares a stored daily total with the sum recomputed from entries.
type ReconcileResult struct {
	Day      string     `json:"day"`
	Stored   DailyTotal `json:"stored"`
	Computed DailyTotal `json:"computed"`
	Drift    bool       `json:"drift"`
}
