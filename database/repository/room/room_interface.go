package roomRepo

import (
	"context"

	"innkeep/models"
)

// RoomRepository defines room inventory data access.
type RoomRepository interface {
	// Create inserts a new room.
	Create(ctx context.Context, room *models.Room) error
	// Upsert inserts or replaces a room keyed by id.
	Upsert(ctx context.Context, room *models.Room) error
	// GetByID retrieves a room by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Room, error)
	// GetAll retrieves every room.
	GetAll(ctx context.Context) ([]models.Room, error)
	// UpdateStatus sets the room status. When from is non-empty the room must currently be
	// in one of those states, otherwise a ConflictError is returned.
	UpdateStatus(ctx context.Context, id string, status models.RoomStatus, from ...models.RoomStatus) error
	EnsureIndexes(ctx context.Context) error
}
