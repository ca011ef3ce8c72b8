package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultCronSpec = "0 * * * * *"

type SweepRunner interface {
	SweepOnce(ctx context.Context, now time.Time) []CompanyResult
}

// Scheduler fires a sweep on a seconds-resolution cron. A firing that comes
// while the previous sweep is still running is dropped.
type Scheduler struct {
	cron    *cron.Cron
	sweeper SweepRunner
	loc     *time.Location
	logger  *zap.Logger
	ctx     context.Context
}

func NewScheduler(sweeper SweepRunner, spec string, loc *time.Location, logger ...*zap.Logger) (*Scheduler, error) {
	l := zap.L().Named("payroll.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.scheduler")
	}
	if spec == "" {
		spec = DefaultCronSpec
	}
	if loc == nil {
		loc = time.Local
	}

	cl := cronLogger{l: l.Sugar()}
	s := &Scheduler{
		sweeper: sweeper,
		loc:     loc,
		logger:  l,
		ctx:     context.Background(),
	}
	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("payroll cron spec %q: %w", spec, err)
	}
	return s, nil
}

// Run blocks until ctx is cancelled and the in-flight sweep, if any, returns.
func (s *Scheduler) Run(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.Info("payroll scheduler started", zap.String("timezone", s.loc.String()))

	<-ctx.Done()

	s.logger.Info("payroll scheduler stopping")
	<-s.cron.Stop().Done()
	s.logger.Info("payroll scheduler stopped")
}

func (s *Scheduler) tick() {
	now := time.Now().In(s.loc)
	results := s.sweeper.SweepOnce(s.ctx, now)

	completed, skipped, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Result.Skipped:
			skipped++
		default:
			completed++
		}
	}
	if completed > 0 || failed > 0 {
		s.logger.Info("payroll sweep finished",
			zap.Time("at", now),
			zap.Int("companies", len(results)),
			zap.Int("completed", completed),
			zap.Int("skipped", skipped),
			zap.Int("failed", failed),
		)
	}
}

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
