package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/config"
	"github.com/aliouned/propfin/internal/domain/models"
	"github.com/aliouned/propfin/internal/service/goals"
	"github.com/aliouned/propfin/internal/service/snapshot"
	"github.com/aliouned/propfin/pkg/clients/notify"
)

// Scheduler runs the monthly analytics cycle: snapshot every property,
// then re-evaluate goals against the fresh values.
type Scheduler struct {
	cron        *cron.Cron
	snapshotSvc *snapshot.Service
	goalSvc     *goals.Service
	notifier    notify.Client
	cfg         config.Config
	logger      *zap.Logger
}

// NewScheduler creates a new scheduler instance. The notifier may be nil
// when no ops webhook is configured.
func NewScheduler(cfg config.Config, snapshotSvc *snapshot.Service, goalSvc *goals.Service, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	var opts []cron.Option
	if loc, err := time.LoadLocation(cfg.Reporting.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("invalid timezone, scheduler falls back to local time",
			zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
	}

	return &Scheduler{
		cron:        cron.New(opts...),
		snapshotSvc: snapshotSvc,
		goalSvc:     goalSvc,
		notifier:    notifier,
		cfg:         cfg,
		logger:      logger,
	}
}

// Start registers the monthly cycle and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runMonthlyCycle); err != nil {
		s.logger.Error("failed to schedule monthly cycle", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runMonthlyCycle() {
	s.logger.Info("running monthly analytics cycle")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	batch, err := s.snapshotSvc.GenerateMonthlySnapshots(ctx)
	if err != nil {
		s.logger.Error("monthly snapshot batch failed", zap.Error(err))
		return
	}

	updated, err := s.goalSvc.RefreshGoals(ctx)
	if err != nil {
		s.logger.Error("goal refresh failed", zap.Error(err))
	}

	summary := models.CycleSummary{
		SnapshotsCreated: batch.Success,
		SnapshotErrors:   batch.Errors,
		GoalsUpdated:     updated,
	}
	s.logger.Info("monthly analytics cycle finished",
		zap.Int("snapshots_created", summary.SnapshotsCreated),
		zap.Int("snapshot_errors", summary.SnapshotErrors),
		zap.Int("goals_updated", summary.GoalsUpdated))

	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyCycle(ctx, summary); err != nil {
		s.logger.Error("failed to notify cycle summary", zap.Error(err))
	}
}
