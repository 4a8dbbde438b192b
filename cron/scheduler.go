package cron

import (
	"context"
	"time"

	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Jobs bundles what the background jobs need.
type Jobs struct {
	Ledger   ledger.LedgerService
	Clock    utils.Clock
	Location *time.Location

	// ReconcileCron is a five field crontab evaluated in Location.
	ReconcileCron  string
	HealthInterval time.Duration
	StorePing      utils.Pinger
	CachePing      utils.Pinger
}

func (j *Jobs) now() time.Time {
	if j.Clock == nil {
		return time.Now()
	}
	return j.Clock.Now()
}

// Start registers the reconciliation and health jobs and starts the scheduler.
// The caller owns Shutdown.
func Start(j *Jobs) (gocron.Scheduler, error) {
	loc := j.Location
	if loc == nil {
		loc = time.UTC
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, err
	}

	if _, err := sched.NewJob(
		gocron.CronJob(j.ReconcileCron, false),
		gocron.NewTask(j.ReconcileRecent),
		gocron.WithName("reconcile-daily-totals"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	interval := j.HealthInterval
	if interval <= 0 {
		interval = time.Minute
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(j.CheckHealth),
		gocron.WithName("health-check"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	utils.GetLogger().Info("Scheduler started", zap.Int("jobs", len(sched.Jobs())), zap.String("reconcileCron", j.ReconcileCron))
	return sched, nil
}

// ReconcileRecent reconciles yesterday and today. Entries posted around midnight can
// land on either side, so both days are checked.
func (j *Jobs) ReconcileRecent() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger := utils.GetLogger()
	loc := j.Location
	if loc == nil {
		loc = time.UTC
	}
	now := j.now()
	for _, day := range []string{utils.Day(now.AddDate(0, 0, -1), loc), utils.Day(now, loc)} {
		result, err := j.Ledger.ReconcileDay(ctx, day)
		if err != nil {
			logger.Error("Reconciliation failed", zap.String("day", day), zap.Error(err))
			continue
		}
		if result.Drift {
			logger.Warn("Daily total corrected", zap.String("day", day))
		}
	}
}

func (j *Jobs) CheckHealth() {
	status := utils.CheckHealth(context.Background(), j.StorePing, j.CachePing)
	if !status.Store || !status.Cache {
		utils.GetLogger().Warn("Health check degraded", zap.Bool("store", status.Store), zap.Bool("cache", status.Cache))
	}
}
