package payroll_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go-bossboard/internal/payroll"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls atomic.Int32
	fired chan time.Time
}

func (s *countingSweeper) SweepOnce(ctx context.Context, now time.Time) []payroll.CompanyResult {
	s.calls.Add(1)
	select {
	case s.fired <- now:
	default:
	}
	return nil
}

func TestNewScheduler_RejectsInvalidSpec(t *testing.T) {
	_, err := payroll.NewScheduler(&countingSweeper{}, "every minute", time.UTC, zap.NewNop())
	assert.Error(t, err)

	// five-field specs are rejected because the parser expects seconds.
	_, err = payroll.NewScheduler(&countingSweeper{}, "* * * * *", time.UTC, zap.NewNop())
	assert.Error(t, err)
}

func TestScheduler_FiresAndStops(t *testing.T) {
	sweeper := &countingSweeper{fired: make(chan time.Time, 1)}
	s, err := payroll.NewScheduler(sweeper, "* * * * * *", jakarta, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case at := <-sweeper.fired:
		assert.Equal(t, jakarta, at.Location())
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler never fired")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	assert.GreaterOrEqual(t, sweeper.calls.Load(), int32(1))
}
