package app

import (
	"context"
	"net/http"
	"time"

	"go-bossboard/internal/config"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/events"
	"go-bossboard/internal/messaging/kafka/consumer"
	"go-bossboard/internal/middleware"
	"go-bossboard/internal/shared/apperror"
	"go-bossboard/internal/shared/connection"
	"go-bossboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// App is the assembled HTTP API. Close releases every connection it opened.
type App struct {
	Handler http.Handler
	closers []func()
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// BuildApp connects infrastructure, applies migrations and mounts all routes.
// Background consumers started here stop when ctx is cancelled.
func BuildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	in, err := connectInfra(cfg, logger, true)
	if err != nil {
		return nil, err
	}
	app := &App{closers: []func(){in.Close}}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	router.GET("/health", healthHandler(in))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(20, 40),
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ContextLogger(logger),
	)

	stats, err := registerModules(api, cfg, in, reg, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	if cfg.Kafka.Broker != "" {
		closeReader, err := startPayrollConsumer(ctx, cfg, stats, logger)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, closeReader)
	} else {
		logger.Warn("KAFKA_BROKER not set; dashboard cache relies on in-process invalidation only")
	}

	app.Handler = router
	return app, nil
}

func startPayrollConsumer(
	ctx context.Context,
	cfg *config.Config,
	stats domain.StatsInvalidator,
	logger *zap.Logger,
) (func(), error) {
	topics := []string{events.PayrollExecutedTopic}
	if err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, topics, cfg.DB.MaxRetries, logger); err != nil {
		return nil, err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{cfg.Kafka.Broker},
		GroupID:  cfg.Kafka.ConsumerGroup,
		Topic:    events.PayrollExecutedTopic,
		MinBytes: 1,
		MaxBytes: 1 << 20,
		MaxWait:  time.Second,
	})

	go consumer.ConsumePayrollExecuted(ctx, reader, stats, logger)

	return func() { _ = reader.Close() }, nil
}

func healthHandler(in *infra) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "up"}
		healthy := true

		if sqlDB, err := in.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "down"
			healthy = false
		}
		if in.rdb != nil {
			status["redis"] = "up"
			if err := in.rdb.Ping(ctx).Err(); err != nil {
				status["redis"] = "down"
				healthy = false
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "dependency unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, status, nil)
	}
}
