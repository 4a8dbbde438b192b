package booking

import (
	"context"
	"strconv"
	"strings"

	"innkeep/models"
)

// ListBookings returns one page of bookings ordered by stay date, filtered by a
// case-insensitive search over name, mobile, date and room numbers. Page is 1-based.
// Active and cancelled counts cover every match, not just the page.
func (s *DefaultAdvanceBookingService) ListBookings(ctx context.Context, search string, page int) (*models.BookingPage, error) {
	all, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.BookingPage{PageSize: PageSize, Bookings: []models.AdvanceBooking{}}
	var matched []models.AdvanceBooking
	for _, b := range all {
		if !MatchesSearch(b, search) {
			continue
		}
		matched = append(matched, b)
		switch b.Status {
		case models.BookingActive:
			result.ActiveCount++
		case models.BookingCancelled:
			result.CancelledCount++
		}
	}

	result.TotalMatches = len(matched)
	result.TotalPages = (len(matched) + PageSize - 1) / PageSize
	if result.TotalPages == 0 {
		result.TotalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > result.TotalPages {
		page = result.TotalPages
	}
	result.Page = page

	start := (page - 1) * PageSize
	if start < len(matched) {
		end := start + PageSize
		if end > len(matched) {
			end = len(matched)
		}
		result.Bookings = matched[start:end]
	}
	return result, nil
}

// MatchesSearch reports whether the booking's name, mobile, date or any room number
// contains query.
func MatchesSearch(b models.AdvanceBooking, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Name), q) ||
		strings.Contains(b.Mobile, q) ||
		strings.Contains(b.DateOfBooking, q) {
		return true
	}
	for _, r := range b.Rooms {
		if strings.Contains(strconv.Itoa(r.RoomNumber), q) {
			return true
		}
	}
	return false
}
