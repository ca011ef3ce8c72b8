package payroll

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go-bossboard/internal/company"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CompanySource interface {
	FindSchedulable(ctx context.Context) ([]company.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error)
}

// Runner executes the scheduled path for one company.
type Runner interface {
	Execute(ctx context.Context, c company.Company, now time.Time) (ExecutionResult, error)
}

type Sweeper struct {
	companies CompanySource
	runner    Runner
	metrics   *Metrics
	logger    *zap.Logger
}

func NewSweeper(companies CompanySource, runner Runner, metrics *Metrics, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("payroll.sweep")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.sweep")
	}
	return &Sweeper{companies: companies, runner: runner, metrics: metrics, logger: l}
}

// SweepOnce evaluates every schedulable company in turn and returns one result
// per company attempted. A failing or panicking company never stops the loop.
// Cancelling ctx stops the sweep before the next company; the current one
// runs to completion.
func (s *Sweeper) SweepOnce(ctx context.Context, now time.Time) []CompanyResult {
	started := time.Now()

	companies, err := s.companies.FindSchedulable(ctx)
	if err != nil {
		s.logger.Error("load schedulable companies failed", zap.Error(err))
		s.metrics.observeSweep(started, 0)
		return nil
	}

	results := make([]CompanyResult, 0, len(companies))
	failures := 0
	for _, c := range companies {
		if ctx.Err() != nil {
			s.logger.Info("sweep interrupted", zap.Int("remaining", len(companies)-len(results)))
			break
		}

		res := s.runOne(context.WithoutCancel(ctx), c, now)
		if res.Err != nil {
			failures++
			s.logger.Error("payroll execution failed",
				zap.String("company_id", res.CompanyID),
				zap.Error(res.Err),
			)
		}
		results = append(results, res)
	}

	s.metrics.observeSweep(started, failures)
	return results
}

func (s *Sweeper) runOne(ctx context.Context, c company.Company, now time.Time) (res CompanyResult) {
	res.CompanyID = c.ID.String()
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("payroll execution panicked: %v", r)
			s.logger.Error("payroll execution panicked",
				zap.String("company_id", res.CompanyID),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
		}
	}()

	res.Result, res.Err = s.runner.Execute(ctx, c, now)
	return res
}
