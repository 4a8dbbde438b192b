package memstore

import (
	"context"
	"fmt"
	"sort"

	advanceRepo "innkeep/database/repository/advance"
	houseRepo "innkeep/database/repository/house"
	"innkeep/models"
	"innkeep/utils"
)

type AdvanceBookingRepo struct{ s *Store }

func (s *Store) AdvanceBookings() advanceRepo.AdvanceBookingRepository {
	return &AdvanceBookingRepo{s: s}
}

func (r *AdvanceBookingRepo) Create(ctx context.Context, booking *models.AdvanceBooking) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.bookings[booking.ID]; ok {
		return utils.NewConflictError("advance booking " + booking.ID + " already exists")
	}
	r.s.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (r *AdvanceBookingRepo) Upsert(ctx context.Context, booking *models.AdvanceBooking) error {
	defer r.s.lock(ctx)()
	r.s.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (r *AdvanceBookingRepo) GetByID(ctx context.Context, id string) (*models.AdvanceBooking, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, utils.NewNotFoundError("advance booking", id)
	}
	b = cloneBooking(b)
	return &b, nil
}

func (r *AdvanceBookingRepo) GetActiveByDate(ctx context.Context, date string) ([]models.AdvanceBooking, error) {
	return r.list(ctx, func(b models.AdvanceBooking) bool {
		return b.DateOfBooking == date && b.Status == models.BookingActive
	})
}

func (r *AdvanceBookingRepo) GetAll(ctx context.Context) ([]models.AdvanceBooking, error) {
	return r.list(ctx, func(models.AdvanceBooking) bool { return true })
}

func (r *AdvanceBookingRepo) list(ctx context.Context, keep func(models.AdvanceBooking) bool) ([]models.AdvanceBooking, error) {
	defer r.s.lock(ctx)()
	out := []models.AdvanceBooking{}
	for _, b := range r.s.bookings {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DateOfBooking != b.DateOfBooking {
			return a.DateOfBooking < b.DateOfBooking
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *AdvanceBookingRepo) Update(ctx context.Context, booking *models.AdvanceBooking) error {
	defer r.s.lock(ctx)()
	stored, ok := r.s.bookings[booking.ID]
	if !ok {
		return utils.NewNotFoundError("advance booking", booking.ID)
	}
	if stored.Version != booking.Version {
		return utils.NewStaleError("advance booking", booking.ID)
	}
	booking.Version++
	r.s.bookings[booking.ID] = cloneBooking(*booking)
	return nil
}

func (r *AdvanceBookingRepo) ClaimRooms(ctx context.Context, bookingID, date string, roomIDs []string) error {
	defer r.s.lock(ctx)()
	for _, id := range roomIDs {
		if _, taken := r.s.claims[claimKey{roomID: id, date: date}]; taken {
			return utils.NewConflictError("one or more rooms are already reserved for " + date)
		}
	}
	for _, id := range roomIDs {
		r.s.claims[claimKey{roomID: id, date: date}] = bookingID
	}
	return nil
}

func (r *AdvanceBookingRepo) ReleaseClaims(ctx context.Context, bookingID string) error {
	defer r.s.lock(ctx)()
	for k, owner := range r.s.claims {
		if owner == bookingID {
			delete(r.s.claims, k)
		}
	}
	return nil
}

func (r *AdvanceBookingRepo) EnsureIndexes(context.Context) error { return nil }

// ClaimCount reports how many room claims bookingID holds.
func (s *Store) ClaimCount(bookingID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, owner := range s.claims {
		if owner == bookingID {
			n++
		}
	}
	return n
}

type HouseRepo struct{ s *Store }

func (s *Store) Houses() houseRepo.HouseRepository { return &HouseRepo{s: s} }

func (r *HouseRepo) SeedHouses(ctx context.Context, houses []models.House) error {
	defer r.s.lock(ctx)()
	for _, h := range houses {
		if _, ok := r.s.houses[h.ID]; !ok {
			r.s.houses[h.ID] = h
		}
	}
	return nil
}

func (r *HouseRepo) GetHouses(ctx context.Context) ([]models.House, error) {
	defer r.s.lock(ctx)()
	out := make([]models.House, 0, len(r.s.houses))
	for _, h := range r.s.houses {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *HouseRepo) GetHouse(ctx context.Context, id string) (*models.House, error) {
	defer r.s.lock(ctx)()
	h, ok := r.s.houses[id]
	if !ok {
		return nil, utils.NewNotFoundError("house", id)
	}
	return &h, nil
}

func (r *HouseRepo) CreateBooking(ctx context.Context, booking *models.HouseBooking) error {
	defer r.s.lock(ctx)()
	if _, ok := r.s.houseBooks[booking.ID]; ok {
		return utils.NewConflictError("house booking " + booking.ID + " already exists")
	}
	if !booking.IsCheckedOut {
		for _, b := range r.s.houseBooks {
			if b.HouseID == booking.HouseID && !b.IsCheckedOut {
				return utils.NewConflictError(fmt.Sprintf("%s is already occupied", booking.HouseName))
			}
		}
	}
	r.s.houseBooks[booking.ID] = cloneHouseBooking(*booking)
	return nil
}

func (r *HouseRepo) GetBooking(ctx context.Context, id string) (*models.HouseBooking, error) {
	defer r.s.lock(ctx)()
	b, ok := r.s.houseBooks[id]
	if !ok {
		return nil, utils.NewNotFoundError("house booking", id)
	}
	b = cloneHouseBooking(b)
	return &b, nil
}

func (r *HouseRepo) GetOpenBookings(ctx context.Context) ([]models.HouseBooking, error) {
	defer r.s.lock(ctx)()
	out := []models.HouseBooking{}
	for _, b := range r.s.houseBooks {
		if !b.IsCheckedOut {
			out = append(out, cloneHouseBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckedInAt.Equal(out[j].CheckedInAt) {
			return out[i].CheckedInAt.After(out[j].CheckedInAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *HouseRepo) UpdateBooking(ctx context.Context, booking *models.HouseBooking) error {
	defer r.s.lock(ctx)()
	stored, ok := r.s.houseBooks[booking.ID]
	if !ok {
		return utils.NewNotFoundError("house booking", booking.ID)
	}
	if stored.Version != booking.Version {
		return utils.NewStaleError("house booking", booking.ID)
	}
	booking.Version++
	r.s.houseBooks[booking.ID] = cloneHouseBooking(*booking)
	return nil
}

func (r *HouseRepo) EnsureIndexes(context.Context) error { return nil }
