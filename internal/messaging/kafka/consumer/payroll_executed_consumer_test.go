package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-bossboard/internal/events"
	"go-bossboard/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedReader replays messages then blocks until the context is cancelled.
type scriptedReader struct {
	msgs      []kafkago.Message
	fetchErrs int
	committed []int64
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if r.fetchErrs > 0 {
		r.fetchErrs--
		return kafkago.Message{}, errors.New("broker hiccup")
	}
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type recordingInvalidator struct{ ids []string }

func (r *recordingInvalidator) Invalidate(id string) { r.ids = append(r.ids, id) }

func TestConsumePayrollExecuted(t *testing.T) {
	payload, _ := json.Marshal(events.PayrollExecutedEvent{
		EventType: events.PayrollExecutedEventType,
		CompanyID: "company-1",
		Trigger:   "scheduled",
	})

	defer consumer.SetFetchBackoff(time.Millisecond, time.Millisecond)()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		fetchErrs: 1,
		msgs: []kafkago.Message{
			{Offset: 1, Value: []byte("not json")},
			{Offset: 2, Value: payload},
		},
		cancel: cancel,
	}
	inv := &recordingInvalidator{}

	consumer.ConsumePayrollExecuted(ctx, reader, inv, zap.NewNop())

	assert.Equal(t, []string{"company-1"}, inv.ids)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

type failingReader struct{ fetches atomic.Int32 }

func (r *failingReader) FetchMessage(context.Context) (kafkago.Message, error) {
	r.fetches.Add(1)
	return kafkago.Message{}, errors.New("broker unreachable")
}

func (r *failingReader) CommitMessages(context.Context, ...kafkago.Message) error { return nil }

func TestConsumePayrollExecuted_BacksOffOnFetchError(t *testing.T) {
	defer consumer.SetFetchBackoff(time.Hour, time.Hour)()

	ctx, cancel := context.WithCancel(context.Background())
	reader := &failingReader{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumePayrollExecuted(ctx, reader, &recordingInvalidator{}, zap.NewNop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		require.FailNow(t, "consumer did not stop while backing off")
	}
	assert.Equal(t, int32(1), reader.fetches.Load())
}
