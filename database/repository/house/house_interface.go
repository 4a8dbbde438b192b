package houseRepo

import (
	"context"

	"innkeep/models"
)

// HouseRepository defines access to houses and their bookings.
type HouseRepository interface {
	// SeedHouses inserts any of houses that do not exist yet.
	SeedHouses(ctx context.Context, houses []models.House) error
	GetHouses(ctx context.Context) ([]models.House, error)
	GetHouse(ctx context.Context, id string) (*models.House, error)

	// CreateBooking inserts a booking. A second open booking for the same house is a
	// ConflictError.
	CreateBooking(ctx context.Context, booking *models.HouseBooking) error
	GetBooking(ctx context.Context, id string) (*models.HouseBooking, error)
	GetOpenBookings(ctx context.Context) ([]models.HouseBooking, error)
	// UpdateBooking replaces the booking if its stored version equals booking.Version
	// and bumps the version on success.
	UpdateBooking(ctx context.Context, booking *models.HouseBooking) error

	EnsureIndexes(ctx context.Context) error
}
