package advanceRepo

import (
	"context"

	"innkeep/models"
)

// AdvanceBookingRepository defines access to advance bookings and the room claims
// that keep two active bookings off the same room and date.
type AdvanceBookingRepository interface {
	Create(ctx context.Context, booking *models.AdvanceBooking) error
	// Upsert inserts or replaces a booking keyed by id. Used by the legacy importer.
	Upsert(ctx context.Context, booking *models.AdvanceBooking) error
	GetByID(ctx context.Context, id string) (*models.AdvanceBooking, error)
	// GetActiveByDate returns active bookings whose date_of_booking equals date.
	GetActiveByDate(ctx context.Context, date string) ([]models.AdvanceBooking, error)
	// GetAll returns every booking ordered by date_of_booking then created_at.
	GetAll(ctx context.Context) ([]models.AdvanceBooking, error)
	// Update replaces the booking if its stored version equals booking.Version and
	// bumps the version on success.
	Update(ctx context.Context, booking *models.AdvanceBooking) error

	// ClaimRooms reserves each room for date on behalf of bookingID. A room already
	// claimed for that date is a ConflictError.
	ClaimRooms(ctx context.Context, bookingID, date string, roomIDs []string) error
	// ReleaseClaims drops every claim held by bookingID.
	ReleaseClaims(ctx context.Context, bookingID string) error

	EnsureIndexes(ctx context.Context) error
}
