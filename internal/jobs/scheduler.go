package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

// Scheduler runs housekeeping jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(loc *time.Location, log *zap.Logger) *Scheduler {
	log = logger.OrNop(log).Named("jobs")
	if loc == nil {
		loc = time.UTC
	}
	cl := cronLogger{log.Sugar()}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: log,
	}
}

// Add registers job under spec, e.g. "@every 15m" or "0 3 * * *".
func (s *Scheduler) Add(spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job.Run(context.Background()); err != nil {
			s.logger.Error("job failed", zap.String("job", job.Name()), zap.Error(err))
			return
		}
		s.logger.Debug("job finished", zap.String("job", job.Name()), zap.Duration("took", time.Since(start)))
	}); err != nil {
		return fmt.Errorf("schedule %s at %q: %w", job.Name(), spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
