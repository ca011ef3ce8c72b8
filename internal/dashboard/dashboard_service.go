package dashboard

import (
	"context"
	"time"

	"go-bossboard/internal/payroll"
	"go-bossboard/internal/shared/cache"
	"go-bossboard/internal/wallet"

	"go.uber.org/zap"
)

type Service interface {
	Stats(ctx context.Context, companyID string) (StatsResponse, error)
	Invalidate(companyID string)
}

type service struct {
	repo   Repository
	store  *cache.Store[StatsResponse]
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the stats computation behind a per-company cache. The
// service doubles as the domain.StatsInvalidator handed to the write paths.
func NewService(repo Repository, store *cache.Store[StatsResponse], loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, store: store, loc: loc, now: time.Now, logger: l}
}

func (s *service) Stats(ctx context.Context, companyID string) (StatsResponse, error) {
	return s.store.GetOrLoad(ctx, companyID, func(ctx context.Context) (StatsResponse, error) {
		s.logger.Debug("computing dashboard stats", zap.String("company_id", companyID))
		return s.compute(ctx, companyID)
	})
}

func (s *service) Invalidate(companyID string) {
	s.store.Invalidate(companyID)
}

func (s *service) compute(ctx context.Context, companyID string) (StatsResponse, error) {
	totals, err := s.repo.Totals(ctx, companyID)
	if err != nil {
		return StatsResponse{}, err
	}
	depts, err := s.repo.Departments(ctx, companyID)
	if err != nil {
		return StatsResponse{}, err
	}

	now := s.now().In(s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	payouts, err := s.repo.Payouts(ctx, companyID, monthStart, failedStatuses())
	if err != nil {
		return StatsResponse{}, err
	}

	expenses := totals.TotalPayroll.Add(totals.TotalSpendings)
	resp := StatsResponse{
		TotalWorkers:     totals.TotalWorkers,
		TotalDepartments: totals.TotalDepartments,
		TotalRevenue:     totals.TotalRevenue,
		TotalPayroll:     totals.TotalPayroll,
		TotalSpendings:   totals.TotalSpendings,
		CEOSpendings:     totals.CEOSpendings,
		TotalExpenses:    expenses,
		Profit:           totals.TotalRevenue.Sub(expenses),
		PaidThisMonth:    payouts.Paid,
		LastPayrollAt:    payouts.LastRunAt,
		DepartmentStats:  make([]DepartmentStat, len(depts)),
	}
	for i, d := range depts {
		resp.DepartmentStats[i] = DepartmentStat{
			ID:          d.ID,
			Name:        d.Name,
			WorkerCount: d.WorkerCount,
			Payroll:     d.Payroll,
			Spendings:   d.Spendings,
			Total:       d.Payroll.Add(d.Spendings),
		}
	}
	return resp, nil
}

// failedStatuses lists record statuses that moved no money.
func failedStatuses() []string {
	return []string{
		payroll.StatusFailed,
		string(wallet.StateFailed),
		string(wallet.StateCancelled),
		string(wallet.StateDenied),
	}
}
