package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reportTimeout = 2 * time.Minute

// ReportRunner produces and publishes one flock report.
type ReportRunner interface {
	Run(ctx context.Context) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter ReportRunner
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that runs the flock report on a standard
// five-field cron schedule evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, reporter ReportRunner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the report job and starts the scheduler. An empty schedule
// leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("report schedule empty, scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runReport); err != nil {
		return fmt.Errorf("schedule flock report %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	s.logger.Info("stopping scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// Next reports when the report job fires next; zero when it is not scheduled.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runReport() {
	s.logger.Info("generating flock report")
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	if err := s.reporter.Run(ctx); err != nil {
		s.logger.Error("flock report run failed", zap.Error(err))
		return
	}
	s.logger.Info("flock report sent successfully")
}
