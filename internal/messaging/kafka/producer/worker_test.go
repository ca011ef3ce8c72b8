package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-bossboard/internal/messaging/kafka"
	"go-bossboard/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeOutboxRepo struct {
	pending []kafka.OutboxEvent
	listErr error
	sent    []string
	failed  map[string]string
}

func (f *fakeOutboxRepo) WithTx(*gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutboxRepo) Create(context.Context, kafka.OutboxEvent) error {
	return nil
}
func (f *fakeOutboxRepo) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return f.pending, f.listErr
}
func (f *fakeOutboxRepo) MarkSent(_ context.Context, id string) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id string, reason string) error {
	if f.failed == nil {
		f.failed = map[string]string{}
	}
	f.failed[id] = reason
	return nil
}

type fakeWriter struct {
	messages []kafkago.Message
	failKey  string
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if string(m.Key) == w.failKey {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, m)
	}
	return nil
}

func TestProcessPendingEvents_MarksSentAndFailed(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []kafka.OutboxEvent{
		{ID: "evt-1", AggregateType: "company", AggregateID: "company-a", EventType: "payroll.executed", Topic: "t", Payload: []byte(`{}`)},
		{ID: "evt-2", AggregateType: "company", AggregateID: "company-b", EventType: "payroll.executed", Topic: "t", Payload: []byte(`{}`)},
	}}
	writer := &fakeWriter{failKey: "company-b"}

	sent, err := producer.ProcessPendingEvents(context.Background(), repo, writer, zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"evt-1"}, repo.sent)
	assert.Equal(t, "broker unavailable", repo.failed["evt-2"])

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "t", msg.Topic)
	assert.Equal(t, "company-a", string(msg.Key))
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "event_type", Value: []byte("payroll.executed")})
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	repo := &fakeOutboxRepo{listErr: errors.New("db down")}

	sent, err := producer.ProcessPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
	assert.Zero(t, sent)
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, &fakeOutboxRepo{}, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()
	<-done
}
