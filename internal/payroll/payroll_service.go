package payroll

import (
	"context"
	"errors"
	"time"

	"go-bossboard/internal/bootstrap"
	"go-bossboard/internal/company"
	payrollerrors "go-bossboard/internal/payroll/errors"
	"go-bossboard/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

type Service interface {
	ListTransactions(ctx context.Context, companyID string, limit int) ([]TransactionResponse, error)
	Execute(ctx context.Context, companyID string, req ExecuteRequest) (*ExecuteResponse, error)
	Preview(ctx context.Context, companyID string) (*PreviewResponse, error)
}

// ManualRunner is the on-demand half of Executor.
type ManualRunner interface {
	ExecuteManual(ctx context.Context, c company.Company, start, end time.Time) (ExecutionResult, error)
}

type ServiceDeps struct {
	Companies CompanySource
	Workers   WorkerSource
	Wallet    WalletGateway
	Ledger    Ledger
	Runner    ManualRunner
	Audit     bootstrap.AuditLogger
}

type service struct {
	companies CompanySource
	workers   WorkerSource
	wallet    WalletGateway
	ledger    Ledger
	runner    ManualRunner
	audit     bootstrap.AuditLogger
	logger    *zap.Logger
}

func NewService(d ServiceDeps, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		companies: d.Companies,
		workers:   d.Workers,
		wallet:    d.Wallet,
		ledger:    d.Ledger,
		runner:    d.Runner,
		audit:     d.Audit,
		logger:    l,
	}
}

func (s *service) ListTransactions(ctx context.Context, companyID string, limit int) ([]TransactionResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	rows, err := s.ledger.FindAllByCompany(ctx, id, limit)
	if err != nil {
		s.logger.Error("list payroll transactions failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := make([]TransactionResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toTransactionResponse(row))
	}
	return resp, nil
}

func (s *service) Execute(ctx context.Context, companyID string, req ExecuteRequest) (*ExecuteResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}
	start, err := company.ParseDate(req.PeriodStart)
	if err != nil {
		return nil, payrollerrors.ErrInvalidPeriodDate
	}
	end, err := company.ParseDate(req.PeriodEnd)
	if err != nil {
		return nil, payrollerrors.ErrInvalidPeriodDate
	}
	if start.After(end) {
		return nil, payrollerrors.ErrInvalidPeriodRange
	}

	comp, err := s.loadCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := s.runner.ExecuteManual(ctx, *comp, start, end)
	if err != nil {
		if len(res.Transfers) == 0 {
			return nil, err
		}
		resp := toExecuteResponse(res)
		s.auditExecution(ctx, "payroll.execute.unrecorded", "manual payroll transfers sent but not recorded", resp, err)
		return nil, apperror.Wrap(err,
			payrollerrors.ErrTransfersNotRecorded.Code,
			payrollerrors.ErrTransfersNotRecorded.Message,
			payrollerrors.ErrTransfersNotRecorded.HTTPStatus,
		).WithDetails(resp.Transfers)
	}
	resp := toExecuteResponse(res)

	s.auditExecution(ctx, "payroll.execute", "manual payroll executed", resp, nil)
	return resp, nil
}

func (s *service) auditExecution(ctx context.Context, action, message string, resp *ExecuteResponse, cause error) {
	if s.audit == nil {
		return
	}
	meta := map[string]any{
		"period_start": resp.PeriodStart,
		"period_end":   resp.PeriodEnd,
		"total_amount": resp.TotalAmount,
		"succeeded":    resp.Succeeded,
		"failed":       resp.Failed,
	}
	if cause != nil {
		meta["transfers"] = resp.Transfers
		meta["error"] = cause.Error()
	}
	s.audit.Log(ctx, bootstrap.AuditLog{Action: action, Message: message, Meta: meta})
}

func (s *service) Preview(ctx context.Context, companyID string) (*PreviewResponse, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidCompanyID
	}

	resp := &PreviewResponse{}
	comp, err := s.companies.GetByID(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		comp = &company.Company{ID: id}
	case err != nil:
		return nil, err
	}

	workers, err := s.workers.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	total := TotalSalary(workers)
	resp.ActiveWorkers = len(workers)
	resp.TotalDue = total.String()
	resp.WalletID = comp.WalletID
	resp.PayrollTime = comp.PayrollTime
	if comp.PayrollDate != nil {
		d := comp.PayrollDate.Format(company.DateLayout)
		resp.PayrollDate = &d
	}

	if walletID := walletIDOf(*comp); walletID != "" {
		balance, err := s.wallet.GetBalance(ctx, walletID)
		if err != nil {
			s.logger.Warn("preview balance lookup failed", zap.String("company_id", companyID), zap.Error(err))
			resp.BalanceError = err.Error()
		} else {
			b := balance.String()
			ok := !balance.LessThan(total)
			resp.Balance = &b
			resp.Sufficient = &ok
		}
	}
	return resp, nil
}

// loadCompany treats a company that was never configured as having no wallet.
func (s *service) loadCompany(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	comp, err := s.companies.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payrollerrors.ErrNoWallet
	}
	return comp, err
}
