package app

import (
	"context"
	"fmt"
	"time"

	"go-bossboard/internal/config"
	"go-bossboard/internal/events"
	"go-bossboard/internal/messaging/kafka"
	"go-bossboard/internal/messaging/kafka/producer"
	"go-bossboard/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker relays pending outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	in, err := connectInfra(cfg, log, false)
	if err != nil {
		return err
	}
	defer in.Close()

	topics := []string{events.PayrollExecutedTopic}
	if err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, topics, cfg.DB.MaxRetries, log); err != nil {
		return err
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Kafka.Broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: false,
	}
	defer writer.Close()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(in.db),
		writer,
		log,
		cfg.Kafka.PollInterval,
	)

	log.Info("worker shutting down")
	return nil
}
