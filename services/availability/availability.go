package availability

import (
	"context"
	"sort"
	"strings"

	advanceRepo "innkeep/database/repository/advance"
	roomRepo "innkeep/database/repository/room"
	stayRepo "innkeep/database/repository/stay"
	"innkeep/models"

	"github.com/gosimple/slug"
)

// AvailabilityService answers which rooms can be reserved for a date.
type AvailabilityService interface {
	FindAvailableRooms(ctx context.Context, date, roomType string) ([]models.Room, error)
}

type DefaultAvailabilityService struct {
	Rooms    roomRepo.RoomRepository
	Bookings advanceRepo.AdvanceBookingRepository
	Stays    stayRepo.StayRepository
}

// FindAvailableRooms returns rooms that are housekeeping-available, not reserved by an
// active advance booking on date, not held by an open stay, and whose type matches
// roomType. The result is ordered by room number.
func (s *DefaultAvailabilityService) FindAvailableRooms(ctx context.Context, date, roomType string) ([]models.Room, error) {
	rooms, err := s.Rooms.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := s.Bookings.GetActiveByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	stays, err := s.Stays.GetOpen(ctx)
	if err != nil {
		return nil, err
	}

	reserved := make(map[string]struct{})
	for _, b := range bookings {
		for _, item := range b.Rooms {
			reserved[item.RoomID] = struct{}{}
		}
	}
	for _, st := range stays {
		reserved[st.RoomID] = struct{}{}
	}

	available := []models.Room{}
	for _, r := range rooms {
		if r.Status != models.RoomAvailable {
			continue
		}
		if _, taken := reserved[r.ID]; taken {
			continue
		}
		if !TypeMatches(r.Type, roomType) {
			continue
		}
		available = append(available, r)
	}

	sort.SliceStable(available, func(i, j int) bool {
		a, b := available[i], available[j]
		if a.RoomNumber != b.RoomNumber {
			return a.RoomNumber < b.RoomNumber
		}
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		return a.ID < b.ID
	})
	return available, nil
}

// NormalizeType lower-cases a room type and joins its words with hyphens.
func NormalizeType(t string) string {
	return slug.Make(strings.TrimSpace(t))
}

// TypeMatches is a substring match on normalised types, so "AC" also matches "Non AC".
// An empty wanted type matches every room.
func TypeMatches(roomType, wanted string) bool {
	w := NormalizeType(wanted)
	if w == "" {
		return true
	}
	return strings.Contains(NormalizeType(roomType), w)
}
