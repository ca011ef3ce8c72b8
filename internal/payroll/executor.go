package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-bossboard/internal/company"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/events"
	"go-bossboard/internal/messaging/kafka"
	payrollerrors "go-bossboard/internal/payroll/errors"
	"go-bossboard/internal/wallet"
	"go-bossboard/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WalletGateway is the part of the wallet provider a payroll run needs.
type WalletGateway interface {
	GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
	Transfer(ctx context.Context, req wallet.TransferRequest) (wallet.TransferResult, error)
}

type WorkerSource interface {
	FindActiveByCompany(ctx context.Context, companyID string) ([]worker.Worker, error)
}

type ExecutorDeps struct {
	Workers    WorkerSource
	Wallet     WalletGateway
	Ledger     Ledger
	Locker     Locker
	Stats      domain.StatsInvalidator
	Metrics    *Metrics
	Credential string
	LockTTL    time.Duration
	Now        func() time.Time
}

// Executor runs payroll for one company, either on schedule or on demand.
type Executor struct {
	workers    WorkerSource
	wallet     WalletGateway
	ledger     Ledger
	locker     Locker
	stats      domain.StatsInvalidator
	metrics    *Metrics
	credential string
	lockTTL    time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

func NewExecutor(d ExecutorDeps, logger ...*zap.Logger) *Executor {
	l := zap.L().Named("payroll.executor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.executor")
	}
	if d.Stats == nil {
		d.Stats = domain.NopInvalidator{}
	}
	if d.Locker == nil {
		d.Locker = NewMemoryLocker()
	}
	if d.LockTTL <= 0 {
		d.LockTTL = 10 * time.Minute
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Executor{
		workers:    d.Workers,
		wallet:     d.Wallet,
		ledger:     d.Ledger,
		locker:     d.Locker,
		stats:      d.Stats,
		metrics:    d.Metrics,
		credential: d.Credential,
		lockTTL:    d.LockTTL,
		now:        d.Now,
		logger:     l,
	}
}

// Execute is the scheduled path. Preconditions that are not met produce a
// skipped result; the error return is reserved for storage and lock failures.
func (e *Executor) Execute(ctx context.Context, c company.Company, now time.Time) (ExecutionResult, error) {
	companyID := c.ID.String()
	log := e.logger.With(zap.String("company_id", companyID))

	if !ShouldRun(c, now) {
		return e.skip(log, companyID, TriggerScheduled, SkipNotScheduledNow), nil
	}

	start, end := PeriodFor(now)

	unlock, ok, err := e.locker.TryLock(ctx, LockKey(c.ID), e.lockTTL)
	if err != nil {
		e.metrics.observeRun(TriggerScheduled, "error")
		return ExecutionResult{}, fmt.Errorf("acquire payroll lock: %w", err)
	}
	if !ok {
		return e.skip(log, companyID, TriggerScheduled, SkipRunInProgress), nil
	}
	defer unlock()

	found, err := e.ledger.FindRecord(ctx, c.ID, start, end, StartOfDay(now))
	if err != nil {
		e.metrics.observeRun(TriggerScheduled, "error")
		return ExecutionResult{}, fmt.Errorf("check existing payroll: %w", err)
	}
	if found {
		return e.skip(log, companyID, TriggerScheduled, SkipAlreadyRunToday), nil
	}

	if e.credential == "" {
		return e.skip(log, companyID, TriggerScheduled, SkipNoCredential), nil
	}
	walletID := walletIDOf(c)
	if walletID == "" {
		return e.skip(log, companyID, TriggerScheduled, SkipNoWalletConfigured), nil
	}

	workers, err := e.workers.FindActiveByCompany(ctx, companyID)
	if err != nil {
		e.metrics.observeRun(TriggerScheduled, "error")
		return ExecutionResult{}, fmt.Errorf("load active workers: %w", err)
	}
	if len(workers) == 0 {
		return e.skip(log, companyID, TriggerScheduled, SkipNoActiveWorkers), nil
	}

	total := TotalSalary(workers)
	if !e.balanceCovers(ctx, log, walletID, total) {
		return e.skip(log, companyID, TriggerScheduled, SkipInsufficientBalance), nil
	}

	return e.run(ctx, log, c, walletID, workers, start, end, now, TriggerScheduled)
}

// ExecuteManual is the on-demand path. It skips the schedule and same-day
// checks and reports unmet preconditions as errors.
func (e *Executor) ExecuteManual(ctx context.Context, c company.Company, start, end time.Time) (ExecutionResult, error) {
	companyID := c.ID.String()
	log := e.logger.With(zap.String("company_id", companyID), zap.String("trigger", TriggerManual))

	if e.credential == "" {
		return ExecutionResult{}, payrollerrors.ErrNoCredential
	}
	if err := wallet.ValidateCredential(e.credential); err != nil {
		return ExecutionResult{}, payrollerrors.ErrInvalidCredential
	}
	walletID := walletIDOf(c)
	if walletID == "" {
		return ExecutionResult{}, payrollerrors.ErrNoWallet
	}

	unlock, ok, err := e.locker.TryLock(ctx, LockKey(c.ID), e.lockTTL)
	if err != nil {
		log.Error("acquire payroll lock failed", zap.Error(err))
		return ExecutionResult{}, payrollerrors.ErrLockUnavailable
	}
	if !ok {
		return ExecutionResult{}, payrollerrors.ErrRunInProgress
	}
	defer unlock()

	workers, err := e.workers.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("load active workers: %w", err)
	}
	if len(workers) == 0 {
		return ExecutionResult{}, payrollerrors.ErrNoActiveWorkers
	}

	if !e.balanceCovers(ctx, log, walletID, TotalSalary(workers)) {
		e.metrics.observeRun(TriggerManual, string(SkipInsufficientBalance))
		return ExecutionResult{}, payrollerrors.ErrInsufficientBalance
	}

	return e.run(ctx, log, c, walletID, workers, start, end, e.now(), TriggerManual)
}

// balanceCovers is advisory: a failed balance query lets the run proceed.
func (e *Executor) balanceCovers(ctx context.Context, log *zap.Logger, walletID string, total decimal.Decimal) bool {
	balance, err := e.wallet.GetBalance(ctx, walletID)
	if err != nil {
		log.Warn("wallet balance check failed, proceeding", zap.String("wallet_id", walletID), zap.Error(err))
		return true
	}
	if balance.LessThan(total) {
		log.Info("insufficient wallet balance",
			zap.String("balance", balance.String()),
			zap.String("required", total.String()),
		)
		return false
	}
	return true
}

func (e *Executor) run(
	ctx context.Context,
	log *zap.Logger,
	c company.Company,
	walletID string,
	workers []worker.Worker,
	start, end, now time.Time,
	trigger string,
) (ExecutionResult, error) {
	res := ExecutionResult{
		CompanyID:   c.ID.String(),
		Trigger:     trigger,
		PeriodStart: start,
		PeriodEnd:   end,
		Transfers:   make([]TransferOutcome, 0, len(workers)),
		Total:       decimal.Zero,
	}
	records := make([]Transaction, 0, len(workers))

	for _, w := range workers {
		rec := Transaction{
			ID:          uuid.New(),
			CompanyID:   c.ID,
			WorkerID:    w.ID,
			Amount:      w.Salary,
			PeriodStart: start,
			PeriodEnd:   end,
			Status:      StatusPending,
			Trigger:     trigger,
			CreatedAt:   now,
		}
		out := TransferOutcome{
			TransactionID: rec.ID.String(),
			WorkerID:      w.ID.String(),
			WorkerName:    w.FullName(),
			WalletAddress: w.WalletAddress,
			Amount:        w.Salary,
		}

		result, err := e.wallet.Transfer(ctx, wallet.TransferRequest{
			Credential:  e.credential,
			WalletID:    walletID,
			Destination: w.WalletAddress,
			Amount:      w.Salary,
		})
		if err != nil {
			msg := err.Error()
			rec.Status = StatusFailed
			rec.ErrorMessage = &msg
			out.Status = StatusFailed
			out.Error = msg
			log.Warn("worker transfer failed",
				zap.String("worker_id", out.WorkerID),
				zap.String("amount", w.Salary.String()),
				zap.Error(err),
			)
		} else {
			rec.Status = string(result.State)
			out.Status = rec.Status
			if result.ID != "" {
				id := result.ID
				rec.ExternalTransferID = &id
				out.ExternalID = id
			}
			if result.TxHash != "" {
				hash := result.TxHash
				rec.TransactionHash = &hash
				out.TxHash = hash
			}
		}

		records = append(records, rec)
		res.Transfers = append(res.Transfers, out)
		res.Total = res.Total.Add(w.Salary)
	}

	event, err := executedEvent(res, now)
	if err != nil {
		return res, err
	}
	if err := e.ledger.Commit(ctx, records, event); err != nil {
		e.metrics.observeRun(trigger, "error")
		ids := make([]string, 0, len(res.Transfers))
		for _, t := range res.Transfers {
			if t.ExternalID != "" {
				ids = append(ids, t.ExternalID)
			}
		}
		log.Error("persist payroll records failed after transfers",
			zap.Int("records", len(records)),
			zap.Strings("external_transfer_ids", ids),
			zap.String("total", res.Total.String()),
			zap.Error(err),
		)
		return res, fmt.Errorf("persist payroll records: %w", err)
	}

	e.stats.Invalidate(res.CompanyID)
	e.metrics.observeRun(trigger, "completed")
	e.metrics.observeTransfers(res)

	log.Info("payroll completed",
		zap.String("trigger", trigger),
		zap.Int("transfers", len(res.Transfers)),
		zap.Int("failed", res.Failed()),
		zap.String("total", res.Total.String()),
	)
	return res, nil
}

func (e *Executor) skip(log *zap.Logger, companyID, trigger string, reason SkipReason) ExecutionResult {
	e.metrics.observeRun(trigger, string(reason))
	if reason != SkipNotScheduledNow {
		log.Info("payroll skipped", zap.String("reason", string(reason)))
	}
	return skipped(companyID, trigger, reason)
}

func executedEvent(res ExecutionResult, now time.Time) (*kafka.OutboxEvent, error) {
	payload, err := json.Marshal(events.PayrollExecutedEvent{
		EventType:   events.PayrollExecutedEventType,
		CompanyID:   res.CompanyID,
		Trigger:     res.Trigger,
		PeriodStart: res.PeriodStart.Format(company.DateLayout),
		PeriodEnd:   res.PeriodEnd.Format(company.DateLayout),
		Transfers:   len(res.Transfers),
		Failed:      res.Failed(),
		TotalAmount: res.Total.String(),
		OccurredAt:  now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode payroll event: %w", err)
	}
	return &kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "company",
		AggregateID:   res.CompanyID,
		EventType:     events.PayrollExecutedEventType,
		Topic:         events.PayrollExecutedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}, nil
}

// TotalSalary sums the salaries of workers.
func TotalSalary(workers []worker.Worker) decimal.Decimal {
	total := decimal.Zero
	for _, w := range workers {
		total = total.Add(w.Salary)
	}
	return total
}

func walletIDOf(c company.Company) string {
	if c.WalletID == nil {
		return ""
	}
	return *c.WalletID
}
