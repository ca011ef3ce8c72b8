package app

import (
	"context"
	"time"

	"go-bossboard/internal/bootstrap"
	"go-bossboard/internal/company"
	"go-bossboard/internal/config"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/payroll"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunScheduler runs the per-minute payroll sweep and a small /metrics
// listener until ctx is cancelled.
func RunScheduler(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.scheduler")

	in, err := connectInfra(cfg, log, true)
	if err != nil {
		return err
	}
	defer in.Close()

	if cfg.Wallet.EntitySecret == "" {
		log.Warn("ENTITY_SECRET not set; every company will be skipped")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := payroll.NewMetrics(reg)

	// Dashboard caches live in the API process; they are invalidated through
	// the payroll.executed event the ledger writes to the outbox.
	executor, err := newPayrollExecutor(
		cfg,
		in,
		newWalletClient(cfg, log),
		newPayrollLedger(in),
		domain.NopInvalidator{},
		metrics,
		log,
	)
	if err != nil {
		return err
	}
	sweeper := payroll.NewSweeper(company.NewRepository(in.db), executor, metrics, log)

	scheduler, err := payroll.NewScheduler(sweeper, cfg.Payroll.CronSpec, cfg.Payroll.Location(), log)
	if err != nil {
		return err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/health", healthHandler(in))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return bootstrap.StartHTTPServer(gctx, router, bootstrap.ServerConfig{
			Port:         cfg.Payroll.MetricsPort,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}, bootstrap.NewStdoutAuditLogger(log))
	})

	return g.Wait()
}
