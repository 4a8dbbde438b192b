package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	ledgerRepo "innkeep/database/repository/ledger"
	roomRepo "innkeep/database/repository/room"
	"innkeep/models"
	"innkeep/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "dashboard:summary:"

type DashboardService interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
	Invalidator
}

// DefaultDashboardService builds the summary from room statuses and the stored daily
// totals. Cache may be nil.
type DefaultDashboardService struct {
	Rooms    roomRepo.RoomRepository
	Ledger   ledgerRepo.LedgerRepository
	Cache    Cache
	TTL      time.Duration
	Clock    utils.Clock
	Location *time.Location
}

func (s *DefaultDashboardService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultDashboardService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *DefaultDashboardService) cacheKey() string {
	return cacheKeyPrefix + utils.Day(s.now(), s.location())
}

func (s *DefaultDashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	logger := utils.GetLogger()
	key := s.cacheKey()

	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached models.DashboardSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			logger.Warn("Discarding unreadable dashboard cache entry", zap.String("key", key))
		case !errors.Is(err, utils.ErrCacheMiss):
			logger.Warn("Dashboard cache read failed", zap.Error(err))
		}
	}

	summary, err := s.build(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.Cache.Set(ctx, key, raw, s.TTL); err != nil {
				logger.Warn("Dashboard cache write failed", zap.Error(err))
			}
		}
	}
	return summary, nil
}

// Invalidate drops today's cached summary. Failures are logged only.
func (s *DefaultDashboardService) Invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, s.cacheKey()); err != nil {
		utils.GetLogger().Warn("Dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DefaultDashboardService) build(ctx context.Context) (*models.DashboardSummary, error) {
	rooms, err := s.Rooms.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	loc := s.location()
	now := s.now().In(loc)
	today := utils.StartOfDay(now, loc)
	weekStart := today.AddDate(0, 0, -7)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)

	from := weekStart
	if monthStart.Before(from) {
		from = monthStart
	}
	totals, err := s.Ledger.GetDailyTotals(ctx, from.Format(utils.DayLayout), today.Format(utils.DayLayout))
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]models.DailyTotal, len(totals))
	for _, t := range totals {
		byDay[t.Day] = t
	}

	summary := &models.DashboardSummary{
		Rooms: RoomStatsOf(rooms),
		Today: periodTotals(byDay, today, today),
		Week:  periodTotals(byDay, weekStart, today),
		Month: periodTotals(byDay, monthStart, today),
		AsOf:  today.Format(utils.DayLayout),
	}
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		t := byDay[d.Format(utils.DayLayout)]
		summary.Daily = append(summary.Daily, models.DailyRevenue{
			Day:   d.Format(utils.DayLayout),
			Label: d.Format("Mon"),
			Cash:  orZero(t.Cash),
			GPay:  orZero(t.GPay),
		})
	}
	return summary, nil
}

// RoomStatsOf counts rooms per status.
func RoomStatsOf(rooms []models.Room) models.RoomStats {
	stats := models.RoomStats{Total: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case models.RoomOccupied:
			stats.Occupied++
		case models.RoomAvailable:
			stats.Available++
		case models.RoomCleaning:
			stats.Cleaning++
		case models.RoomMaintenance:
			stats.Maintenance++
		}
	}
	return stats
}

// periodTotals sums the days from start to end inclusive.
func periodTotals(byDay map[string]models.DailyTotal, start, end time.Time) models.PeriodTotals {
	p := models.PeriodTotals{Cash: decimal.Zero, GPay: decimal.Zero}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		t, ok := byDay[d.Format(utils.DayLayout)]
		if !ok {
			continue
		}
		p.Cash = p.Cash.Add(t.Cash)
		p.GPay = p.GPay.Add(t.GPay)
	}
	p.Total = p.Cash.Add(p.GPay)
	return p
}

func orZero(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return d
}
