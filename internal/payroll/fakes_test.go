package payroll_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-bossboard/internal/company"
	"go-bossboard/internal/messaging/kafka"
	"go-bossboard/internal/payroll"
	"go-bossboard/internal/wallet"
	"go-bossboard/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testCredential = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

var jakarta = time.FixedZone("WIB", 7*60*60)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

// scheduledCompany returns a company whose payroll window is the minute of now.
func scheduledCompany(now time.Time) company.Company {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	clock := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())
	return company.Company{
		ID:          uuid.New(),
		WalletID:    strPtr("8b2f4b6a-3f0e-4c55-9f58-5b9a8f0d2c11"),
		PayrollDate: &date,
		PayrollTime: &clock,
	}
}

func newWorker(name, salary string) worker.Worker {
	return worker.Worker{
		ID:            uuid.New(),
		Name:          name,
		Salary:        d(salary),
		WalletAddress: "0x" + fmt.Sprintf("%040d", len(name)),
		IsActive:      true,
	}
}

type fakeWorkers struct {
	workers []worker.Worker
	err     error
}

func (f *fakeWorkers) FindActiveByCompany(ctx context.Context, companyID string) ([]worker.Worker, error) {
	return f.workers, f.err
}

type fakeGateway struct {
	mu         sync.Mutex
	balance    decimal.Decimal
	balanceErr error
	// failFor makes transfers to these destinations fail.
	failFor   map[string]error
	transfers []wallet.TransferRequest
}

func (g *fakeGateway) GetBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return g.balance, g.balanceErr
}

func (g *fakeGateway) Transfer(ctx context.Context, req wallet.TransferRequest) (wallet.TransferResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transfers = append(g.transfers, req)
	if err, ok := g.failFor[req.Destination]; ok {
		return wallet.TransferResult{}, err
	}
	n := len(g.transfers)
	return wallet.TransferResult{
		ID:     fmt.Sprintf("tx-%d", n),
		State:  wallet.StateInitiated,
		TxHash: fmt.Sprintf("0xhash%d", n),
	}, nil
}

// memLedger applies the same existence rule as the SQL ledger.
type memLedger struct {
	mu        sync.Mutex
	records   []payroll.Transaction
	events    []kafka.OutboxEvent
	commits   int
	findErr   error
	commitErr error
}

func (l *memLedger) FindRecord(ctx context.Context, companyID uuid.UUID, start, end, createdAfter time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.findErr != nil {
		return false, l.findErr
	}
	for _, r := range l.records {
		if r.CompanyID == companyID && r.PeriodStart.Equal(start) && r.PeriodEnd.Equal(end) && !r.CreatedAt.Before(createdAfter) {
			return true, nil
		}
	}
	return false, nil
}

func (l *memLedger) Commit(ctx context.Context, records []payroll.Transaction, event *kafka.OutboxEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commits++
	if l.commitErr != nil {
		return l.commitErr
	}
	l.records = append(l.records, records...)
	if event != nil {
		l.events = append(l.events, *event)
	}
	return nil
}

func (l *memLedger) FindAllByCompany(ctx context.Context, companyID uuid.UUID, limit int) ([]payroll.TransactionRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var rows []payroll.TransactionRow
	for _, r := range l.records {
		if r.CompanyID == companyID {
			rows = append(rows, payroll.TransactionRow{Transaction: r})
		}
	}
	return rows, nil
}

type fakeCompanies struct {
	companies []company.Company
	err       error
}

func (f *fakeCompanies) FindSchedulable(ctx context.Context) ([]company.Company, error) {
	return f.companies, f.err
}

func (f *fakeCompanies) GetByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type countingInvalidator struct {
	mu  sync.Mutex
	ids []string
}

func (c *countingInvalidator) Invalidate(id string) {
	c.mu.Lock()
	c.ids = append(c.ids, id)
	c.mu.Unlock()
}

type busyLocker struct{ err error }

func (b busyLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return nil, false, b.err
}

var errTransfer = errors.New("provider rejected transfer")
