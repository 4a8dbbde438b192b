package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	roomRepo "innkeep/database/repository/room"
	stayRepo "innkeep/database/repository/stay"
	"innkeep/models"
	"innkeep/utils"
)

type RoomRepo struct{ s *Store }

func (s *Store) Rooms() roomRepo.RoomRepository { return &RoomRepo{s: s} }

func (r *RoomRepo) Create(ctx context.Context, room *models.Room) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.rooms[room.ID]; ok {
		return utils.NewConflictError(fmt.Sprintf("room %s already exists", room.ID))
	}
	for _, existing := range r.s.rooms {
		if existing.Floor == room.Floor && existing.RoomNumber == room.RoomNumber {
			return utils.NewConflictError(fmt.Sprintf("room %d already exists on floor %s", room.RoomNumber, room.Floor))
		}
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepo) Upsert(ctx context.Context, room *models.Room) error {
	defer r.s.lock(ctx)()
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *RoomRepo) GetByID(ctx context.Context, id string) (*models.Room, error) {
	defer r.s.lock(ctx)()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, utils.NewNotFoundError("room", id)
	}
	return &room, nil
}

func (r *RoomRepo) GetAll(ctx context.Context) ([]models.Room, error) {
	defer r.s.lock(ctx)()
	rooms := make([]models.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].RoomNumber != rooms[j].RoomNumber {
			return rooms[i].RoomNumber < rooms[j].RoomNumber
		}
		return rooms[i].Floor < rooms[j].Floor
	})
	return rooms, nil
}

func (r *RoomRepo) UpdateStatus(ctx context.Context, id string, status models.RoomStatus, from ...models.RoomStatus) error {
	defer r.s.lock(ctx)()
	room, ok := r.s.rooms[id]
	if !ok {
		return utils.NewNotFoundError("room", id)
	}
	if len(from) > 0 && !containsStatus(from, room.Status) {
		return utils.NewConflictError(fmt.Sprintf("room %s is not %v", id, from))
	}
	room.Status = status
	room.UpdatedAt = time.Now()
	r.s.rooms[id] = room
	return nil
}

func (r *RoomRepo) EnsureIndexes(context.Context) error { return nil }

func containsStatus(list []models.RoomStatus, s models.RoomStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type StayRepo struct{ s *Store }

func (s *Store) Stays() stayRepo.StayRepository { return &StayRepo{s: s} }

func (r *StayRepo) Create(ctx context.Context, stay *models.Stay) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.stays[stay.ID]; ok {
		return utils.NewConflictError("stay " + stay.ID + " already exists")
	}
	if !stay.IsCheckedOut {
		for _, existing := range r.s.stays {
			if existing.RoomID == stay.RoomID && !existing.IsCheckedOut {
				return utils.NewConflictError(fmt.Sprintf("room %d already has an open stay", stay.RoomNumber))
			}
		}
	}
	r.s.stays[stay.ID] = cloneStay(*stay)
	return nil
}

func (r *StayRepo) GetByID(ctx context.Context, id string) (*models.Stay, error) {
	defer r.s.lock(ctx)()
	stay, ok := r.s.stays[id]
	if !ok {
		return nil, utils.NewNotFoundError("stay", id)
	}
	stay = cloneStay(stay)
	return &stay, nil
}

func (r *StayRepo) GetOpen(ctx context.Context) ([]models.Stay, error) {
	return r.list(ctx, func(s models.Stay) bool { return !s.IsCheckedOut })
}

func (r *StayRepo) GetAll(ctx context.Context) ([]models.Stay, error) {
	return r.list(ctx, func(models.Stay) bool { return true })
}

func (r *StayRepo) list(ctx context.Context, keep func(models.Stay) bool) ([]models.Stay, error) {
	defer r.s.lock(ctx)()
	stays := []models.Stay{}
	for _, stay := range r.s.stays {
		if keep(stay) {
			stays = append(stays, cloneStay(stay))
		}
	}
	sort.Slice(stays, func(i, j int) bool {
		if !stays[i].CheckedInAt.Equal(stays[j].CheckedInAt) {
			return stays[i].CheckedInAt.After(stays[j].CheckedInAt)
		}
		return stays[i].ID < stays[j].ID
	})
	return stays, nil
}

func (r *StayRepo) Update(ctx context.Context, stay *models.Stay) error {
	defer r.s.lock(ctx)()
	stored, ok := r.s.stays[stay.ID]
	if !ok {
		return utils.NewNotFoundError("stay", stay.ID)
	}
	if stored.Version != stay.Version {
		return utils.NewStaleError("stay", stay.ID)
	}
	stay.Version++
	r.s.stays[stay.ID] = cloneStay(*stay)
	return nil
}

func (r *StayRepo) EnsureIndexes(context.Context) error { return nil }
