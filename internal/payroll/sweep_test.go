package payroll_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-bossboard/internal/company"
	"go-bossboard/internal/payroll"
	"go-bossboard/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	mu    sync.Mutex
	seen  []uuid.UUID
	panic map[uuid.UUID]bool
	fail  map[uuid.UUID]error
	after func()
}

func (r *scriptedRunner) Execute(ctx context.Context, c company.Company, now time.Time) (payroll.ExecutionResult, error) {
	r.mu.Lock()
	r.seen = append(r.seen, c.ID)
	r.mu.Unlock()
	if r.after != nil {
		defer r.after()
	}
	if r.panic[c.ID] {
		panic("wallet client exploded")
	}
	if err := r.fail[c.ID]; err != nil {
		return payroll.ExecutionResult{}, err
	}
	return payroll.ExecutionResult{CompanyID: c.ID.String(), Skipped: true, Reason: payroll.SkipNotScheduledNow}, nil
}

func threeCompanies() []company.Company {
	return []company.Company{{ID: uuid.New()}, {ID: uuid.New()}, {ID: uuid.New()}}
}

func TestSweepOnce_PanicDoesNotStopLoop(t *testing.T) {
	companies := threeCompanies()
	runner := &scriptedRunner{panic: map[uuid.UUID]bool{companies[1].ID: true}}
	sweeper := payroll.NewSweeper(&fakeCompanies{companies: companies}, runner, nil)

	results := sweeper.SweepOnce(context.Background(), time.Now())

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorContains(t, results[1].Err, "wallet client exploded")
	assert.Equal(t, companies[1].ID.String(), results[1].CompanyID)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, []uuid.UUID{companies[0].ID, companies[1].ID, companies[2].ID}, runner.seen)
}

func TestSweepOnce_ErrorDoesNotStopLoop(t *testing.T) {
	companies := threeCompanies()
	runner := &scriptedRunner{fail: map[uuid.UUID]error{companies[1].ID: errors.New("db down")}}
	sweeper := payroll.NewSweeper(&fakeCompanies{companies: companies}, runner, nil)

	results := sweeper.SweepOnce(context.Background(), time.Now())

	require.Len(t, results, 3)
	assert.EqualError(t, results[1].Err, "db down")
	assert.True(t, results[2].Result.Skipped)
}

func TestSweepOnce_LoadError(t *testing.T) {
	sweeper := payroll.NewSweeper(&fakeCompanies{err: errors.New("db down")}, &scriptedRunner{}, nil)

	assert.Empty(t, sweeper.SweepOnce(context.Background(), time.Now()))
}

func TestSweepOnce_CancelStopsBeforeNextCompany(t *testing.T) {
	companies := threeCompanies()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := &scriptedRunner{after: cancel}
	sweeper := payroll.NewSweeper(&fakeCompanies{companies: companies}, runner, nil)

	results := sweeper.SweepOnce(ctx, time.Now())

	assert.Len(t, results, 1)
	assert.Len(t, runner.seen, 1)
}

func TestSweepOnce_WithExecutor(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 30, 0, 0, jakarta)
	due := scheduledCompany(now)
	later := scheduledCompany(now.Add(time.Hour))

	ledger := &memLedger{}
	exec := payroll.NewExecutor(payroll.ExecutorDeps{
		Workers:    &fakeWorkers{workers: []worker.Worker{newWorker("alice", "100")}},
		Wallet:     &fakeGateway{balance: d("1000")},
		Ledger:     ledger,
		Credential: testCredential,
	})
	sweeper := payroll.NewSweeper(&fakeCompanies{companies: []company.Company{due, later}}, exec, nil)

	results := sweeper.SweepOnce(context.Background(), now)

	require.Len(t, results, 2)
	assert.True(t, results[0].Result.Completed())
	assert.Equal(t, payroll.SkipNotScheduledNow, results[1].Result.Reason)
	assert.Len(t, ledger.records, 1)
}
