package stayRepo

import (
	"context"

	"innkeep/models"
)

// StayRepository defines access to room check-ins.
type StayRepository interface {
	// Create inserts a stay. A second open stay for the same room is a ConflictError.
	Create(ctx context.Context, stay *models.Stay) error
	GetByID(ctx context.Context, id string) (*models.Stay, error)
	// GetOpen returns stays that are not checked out.
	GetOpen(ctx context.Context) ([]models.Stay, error)
	// GetAll returns every stay, newest check-in first.
	GetAll(ctx context.Context) ([]models.Stay, error)
	// Update replaces the stay if its stored version still equals stay.Version and
	// bumps the version on success.
	Update(ctx context.Context, stay *models.Stay) error
	EnsureIndexes(ctx context.Context) error
}
