package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/accessguide/accessguide-backend/internal/logging"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs the retention job nightly at 03:00 UTC.
const DefaultSpec = "0 0 3 * * *"

// Purger removes submissions older than a retention window.
type Purger interface {
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler runs the contact retention job.
type Scheduler struct {
	purger    Purger
	retention time.Duration
	spec      string
	timeout   time.Duration
	cron      *cron.Cron
}

// NewScheduler creates a Scheduler. An empty spec selects DefaultSpec.
func NewScheduler(purger Purger, retention time.Duration, spec string) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	return &Scheduler{
		purger:    purger,
		retention: retention,
		spec:      spec,
		timeout:   5 * time.Minute,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithLogger(zapCronLogger{logging.L().Sugar()}),
		cron.WithChain(cron.SkipIfStillRunning(zapCronLogger{logging.L().Sugar()})),
	)

	if _, err := c.AddFunc(s.spec, func() {
		if _, err := s.RunOnce(context.Background()); err != nil {
			logging.L().Error("contact retention job failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}

	s.cron = c
	c.Start()
	logging.L().Info("cron scheduler started", zap.String("spec", s.spec), zap.Duration("retention", s.retention))
	return nil
}

// Stop stops the cron loop and waits for a running job to finish or ctx to
// expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce purges expired submissions immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.purger.Purge(ctx, s.retention)
}

// zapCronLogger adapts zap to cron.Logger.
type zapCronLogger struct {
	l *zap.SugaredLogger
}

func (z zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	z.l.Debugw(msg, keysAndValues...)
}

func (z zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	z.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
