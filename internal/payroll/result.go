package payroll

import (
	"time"

	"go-bossboard/internal/wallet"

	"github.com/shopspring/decimal"
)

// SkipReason explains why a run moved no money.
type SkipReason string

const (
	SkipNotScheduledNow     SkipReason = "not-scheduled-now"
	SkipAlreadyRunToday     SkipReason = "already-run-today"
	SkipNoWalletConfigured  SkipReason = "no-wallet-configured"
	SkipNoCredential        SkipReason = "no-credential-configured"
	SkipNoActiveWorkers     SkipReason = "no-active-workers"
	SkipInsufficientBalance SkipReason = "insufficient-balance"
	SkipRunInProgress       SkipReason = "run-in-progress"
)

// ExecutionResult is either skipped with a Reason, or completed with one
// outcome per attempted worker.
type ExecutionResult struct {
	CompanyID   string
	Trigger     string
	Skipped     bool
	Reason      SkipReason
	PeriodStart time.Time
	PeriodEnd   time.Time
	Transfers   []TransferOutcome
	Total       decimal.Decimal
}

func skipped(companyID, trigger string, reason SkipReason) ExecutionResult {
	return ExecutionResult{CompanyID: companyID, Trigger: trigger, Skipped: true, Reason: reason}
}

func (r ExecutionResult) Completed() bool {
	return !r.Skipped
}

// Failed counts transfers the gateway rejected or that never reached it.
func (r ExecutionResult) Failed() int {
	n := 0
	for _, t := range r.Transfers {
		if t.Failed() {
			n++
		}
	}
	return n
}

type TransferOutcome struct {
	TransactionID string
	WorkerID      string
	WorkerName    string
	WalletAddress string
	Amount        decimal.Decimal
	Status        string
	ExternalID    string
	TxHash        string
	Error         string
}

func (o TransferOutcome) Failed() bool {
	return o.Status == StatusFailed || wallet.TransferState(o.Status).IsFailure()
}

// CompanyResult is what a sweep records for each company it attempted.
type CompanyResult struct {
	CompanyID string
	Result    ExecutionResult
	Err       error
}
