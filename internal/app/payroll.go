package app

import (
	"fmt"

	"go-bossboard/internal/config"
	"go-bossboard/internal/domain"
	"go-bossboard/internal/messaging/kafka"
	"go-bossboard/internal/payroll"
	"go-bossboard/internal/wallet"
	"go-bossboard/internal/worker"

	"go.uber.org/zap"
)

func newWalletClient(cfg *config.Config, logger *zap.Logger) *wallet.Client {
	return wallet.NewClient(wallet.Options{
		BaseURL:    cfg.Wallet.BaseURL,
		APIKey:     cfg.Wallet.APIKey,
		TokenID:    cfg.Wallet.TokenID,
		Blockchain: cfg.Wallet.Blockchain,
		Timeout:    cfg.Wallet.Timeout,
	}, logger)
}

func newPayrollLedger(in *infra) payroll.Ledger {
	return payroll.NewLedger(in.db, kafka.NewOutboxRepository(in.db))
}

func newPayrollExecutor(
	cfg *config.Config,
	in *infra,
	gateway payroll.WalletGateway,
	ledger payroll.Ledger,
	stats domain.StatsInvalidator,
	metrics *payroll.Metrics,
	logger *zap.Logger,
) (*payroll.Executor, error) {
	locker, err := newPayrollLocker(in, logger)
	if err != nil {
		return nil, err
	}

	return payroll.NewExecutor(payroll.ExecutorDeps{
		Workers:    worker.NewRepository(in.db),
		Wallet:     gateway,
		Ledger:     ledger,
		Locker:     locker,
		Stats:      stats,
		Metrics:    metrics,
		Credential: cfg.Wallet.EntitySecret,
		LockTTL:    cfg.Payroll.LockTTL,
	}, logger), nil
}

// newPayrollLocker prefers Redis and falls back to a Postgres advisory lock,
// which the API and scheduler processes share through the database.
func newPayrollLocker(in *infra, logger *zap.Logger) (payroll.Locker, error) {
	if in.rdb != nil {
		return payroll.NewRedisLocker(in.rdb, logger), nil
	}
	sqlDB, err := in.db.DB()
	if err != nil {
		return nil, fmt.Errorf("payroll locker: %w", err)
	}
	return payroll.NewPostgresLocker(sqlDB, logger), nil
}
