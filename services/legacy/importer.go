package legacy

import (
	"context"
	"fmt"
	"time"

	advanceRepo "innkeep/database/repository/advance"
	ledgerRepo "innkeep/database/repository/ledger"
	roomRepo "innkeep/database/repository/room"
	"innkeep/models"
	"innkeep/services/ledger"
	"innkeep/utils"

	"go.uber.org/zap"
)

// Legacy collection names.
const (
	RoomsCollection           = "rooms"
	AdvanceBookingsCollection = "advance_bookings"
	CheckinsCollection        = "checkins"
	HouseBookingsCollection   = "house_bookings"
	PaymentsCollection        = "payments"
)

// Report counts what an import run wrote. Skipped documents could not be mapped;
// Existing entries had already been imported by an earlier run; Duplicates are
// payments whose money is already carried by another legacy document.
type Report struct {
	Rooms           int `json:"rooms"`
	AdvanceBookings int `json:"advanceBookings"`
	Entries         int `json:"entries"`
	Existing        int `json:"existing"`
	Skipped         int `json:"skipped"`
	Duplicates      int `json:"duplicates"`
	DaysRebuilt     int `json:"daysRebuilt"`
}

// Importer copies rooms, advance bookings and payments out of the legacy Firestore
// project. Runs are idempotent: every id is derived from the document path.
type Importer struct {
	Source     Source
	Rooms      roomRepo.RoomRepository
	Bookings   advanceRepo.AdvanceBookingRepository
	LedgerRepo ledgerRepo.LedgerRepository
	Ledger     ledger.LedgerService
	Clock      utils.Clock
	Location   *time.Location
}

func (im *Importer) now() time.Time {
	if im.Clock == nil {
		return time.Now()
	}
	return im.Clock.Now()
}

func (im *Importer) location() *time.Location {
	if im.Location == nil {
		return time.UTC
	}
	return im.Location
}

// Run imports every collection and then rebuilds the daily totals from the entries.
func (im *Importer) Run(ctx context.Context) (*Report, error) {
	logger := utils.GetLogger()
	report := &Report{}

	if err := im.importRooms(ctx, report); err != nil {
		return report, err
	}
	if err := im.importBookings(ctx, report); err != nil {
		return report, err
	}
	if err := im.importSubPayments(ctx, CheckinsCollection, "roomNumber", "", report); err != nil {
		return report, err
	}
	// A legacy house check-in wrote its initial payment under the booking and again as a
	// top-level "check-in" payment. Only the top-level copy is imported.
	if err := im.importSubPayments(ctx, HouseBookingsCollection, "houseName", models.EntryInitial, report); err != nil {
		return report, err
	}
	if err := im.importTopPayments(ctx, report); err != nil {
		return report, err
	}

	results, err := im.Ledger.RebuildDailyTotals(ctx)
	if err != nil {
		return report, fmt.Errorf("rebuilding daily totals: %w", err)
	}
	report.DaysRebuilt = len(results)

	logger.Info("Legacy import finished",
		zap.Int("rooms", report.Rooms),
		zap.Int("advanceBookings", report.AdvanceBookings),
		zap.Int("entries", report.Entries),
		zap.Int("existing", report.Existing),
		zap.Int("skipped", report.Skipped),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("daysRebuilt", report.DaysRebuilt))
	return report, nil
}

func (im *Importer) importRooms(ctx context.Context, report *Report) error {
	docs, err := im.Source.Documents(ctx, RoomsCollection)
	if err != nil {
		return fmt.Errorf("reading %s: %w", RoomsCollection, err)
	}
	for _, doc := range docs {
		room := RoomFromDoc(doc, im.now())
		if room.RoomNumber <= 0 {
			im.skip(doc, "missing roomNumber", report)
			continue
		}
		if err := im.Rooms.Upsert(ctx, &room); err != nil {
			return err
		}
		report.Rooms++
	}
	return nil
}

func (im *Importer) importBookings(ctx context.Context, report *Report) error {
	docs, err := im.Source.Documents(ctx, AdvanceBookingsCollection)
	if err != nil {
		return fmt.Errorf("reading %s: %w", AdvanceBookingsCollection, err)
	}
	for _, doc := range docs {
		booking := BookingFromDoc(doc, im.now())
		if booking.DateOfBooking == "" {
			im.skip(doc, "missing date_of_booking", report)
			continue
		}
		if err := im.Bookings.Upsert(ctx, &booking); err != nil {
			return err
		}
		report.AdvanceBookings++
	}
	return nil
}

// importSubPayments walks the payments sub-collection of every parent document. Entries
// of type duplicate are left out.
func (im *Importer) importSubPayments(ctx context.Context, collection, roomField string, duplicate models.EntryType, report *Report) error {
	parents, err := im.Source.Documents(ctx, collection)
	if err != nil {
		return fmt.Errorf("reading %s: %w", collection, err)
	}
	for _, doc := range parents {
		p := parent{
			Path:         doc.Path,
			CustomerName: str(doc.Data, "guestName", "name"),
			RoomNumber:   str(doc.Data, roomField),
		}
		payments, err := im.Source.Documents(ctx, doc.Path+"/"+PaymentsCollection)
		if err != nil {
			return fmt.Errorf("reading payments of %s: %w", doc.Path, err)
		}
		for _, pay := range payments {
			entry := PaymentFromSub(pay, p, im.now(), im.location())
			if duplicate != "" && entry.Type == duplicate {
				report.Duplicates++
				utils.GetLogger().Debug("Skipping duplicated legacy payment", zap.String("document", describe(pay)))
				continue
			}
			if err := im.upsertEntry(ctx, entry, report); err != nil {
				return err
			}
		}
	}
	return nil
}

func (im *Importer) importTopPayments(ctx context.Context, report *Report) error {
	docs, err := im.Source.Documents(ctx, PaymentsCollection)
	if err != nil {
		return fmt.Errorf("reading %s: %w", PaymentsCollection, err)
	}
	for _, doc := range docs {
		if err := im.upsertEntry(ctx, PaymentFromTop(doc, im.now(), im.location()), report); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) upsertEntry(ctx context.Context, entry models.LedgerEntry, report *Report) error {
	inserted, err := im.LedgerRepo.Upsert(ctx, entry)
	if err != nil {
		return err
	}
	if inserted {
		report.Entries++
	} else {
		report.Existing++
	}
	return nil
}

func (im *Importer) skip(doc Document, reason string, report *Report) {
	report.Skipped++
	utils.GetLogger().Warn("Skipping legacy document", zap.String("document", describe(doc)), zap.String("reason", reason))
}
