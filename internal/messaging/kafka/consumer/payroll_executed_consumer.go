package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-bossboard/internal/domain"
	"go-bossboard/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader used by the consumers.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Fetch errors back off exponentially between these bounds; a successful fetch resets it.
var (
	fetchBackoffMin = 500 * time.Millisecond
	fetchBackoffMax = 30 * time.Second
)

// ConsumePayrollExecuted drops the cached dashboard stats of every company
// that completed a payroll run, including runs made by another process.
func ConsumePayrollExecuted(
	ctx context.Context,
	reader MessageReader,
	invalidator domain.StatsInvalidator,
	logger *zap.Logger,
) {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Named("kafka.consumer.payroll_executed")
	log.Info("payroll executed consumer started")

	backoff := fetchBackoffMin
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll executed consumer stopped")
				return
			}
			log.Error("fetch payroll executed message failed", zap.Duration("retry_in", backoff), zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("payroll executed consumer stopped")
				return
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, fetchBackoffMax)
			continue
		}
		backoff = fetchBackoffMin

		var event events.PayrollExecutedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.CompanyID == "" {
			log.Error("decode payroll executed event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		invalidator.Invalidate(event.CompanyID)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll executed message failed", zap.Error(err))
			continue
		}

		log.Info("dashboard stats invalidated from payroll event",
			zap.String("company_id", event.CompanyID),
			zap.String("trigger", event.Trigger),
			zap.Int("transfers", event.Transfers),
		)
	}
}
