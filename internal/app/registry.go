package app

import (
	"time"

	"go-bossboard/internal/bootstrap"
	"go-bossboard/internal/company"
	"go-bossboard/internal/config"
	"go-bossboard/internal/dashboard"
	"go-bossboard/internal/department"
	"go-bossboard/internal/payroll"
	"go-bossboard/internal/rbac"
	rbacinfra "go-bossboard/internal/rbac/infra"
	"go-bossboard/internal/revenue"
	"go-bossboard/internal/shared/cache"
	"go-bossboard/internal/spending"
	"go-bossboard/internal/treasury"
	"go-bossboard/internal/wallet"
	"go-bossboard/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	balanceCacheSize = 64
	balanceCacheTTL  = 10 * time.Second
)

// registerModules wires every feature module onto the authenticated api group.
// The returned dashboard service doubles as the stats invalidator for the
// payroll.executed consumer.
func registerModules(
	api *gin.RouterGroup,
	cfg *config.Config,
	in *infra,
	reg prometheus.Registerer,
	logger *zap.Logger,
) (dashboard.Service, error) {
	// --- Repositories ---
	companyRepo := company.NewRepository(in.db)
	departmentRepo := department.NewRepository(in.db)
	workerRepo := worker.NewRepository(in.db)
	spendingRepo := spending.NewRepository(in.db)
	revenueRepo := revenue.NewRepository(in.db)
	dashboardRepo := dashboard.NewRepository(in.db)

	// --- RBAC Core ---
	enforcer, err := rbacinfra.NewEnforcer(cfg.Policies)
	if err != nil {
		return nil, err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	statsStore := cache.New[dashboard.StatsResponse](cfg.Cache.DashboardSize, cfg.Cache.DashboardTTL)
	dashboardService := dashboard.NewService(dashboardRepo, statsStore, cfg.Payroll.Location(), logger)

	walletClient := newWalletClient(cfg, logger)
	ledger := newPayrollLedger(in)
	executor, err := newPayrollExecutor(cfg, in, walletClient, ledger, dashboardService, payroll.NewMetrics(reg), logger)
	if err != nil {
		return nil, err
	}

	companyService := company.NewService(in.db, companyRepo, dashboardService, logger)
	departmentService := department.NewService(in.db, departmentRepo, in.rdb, dashboardService, logger)
	workerService := worker.NewService(in.db, workerRepo, dashboardService, logger)
	spendingService := spending.NewService(in.db, spendingRepo, dashboardService, logger)
	revenueService := revenue.NewService(in.db, revenueRepo, dashboardService, logger)
	payrollService := payroll.NewService(payroll.ServiceDeps{
		Companies: companyRepo,
		Workers:   workerRepo,
		Wallet:    walletClient,
		Ledger:    ledger,
		Runner:    executor,
		Audit:     bootstrap.NewStdoutAuditLogger(logger),
	}, logger)
	treasuryService := treasury.NewService(
		walletClient,
		companyRepo,
		workerRepo,
		cache.New[[]wallet.TokenBalance](balanceCacheSize, balanceCacheTTL),
		logger,
	)

	// --- Routes Registration ---
	company.RegisterRoutes(api, company.NewHandler(companyService, logger), rbacService)
	department.RegisterRoutes(api, department.NewHandler(departmentService, logger), rbacService)
	worker.RegisterRoutes(api, worker.NewHandler(workerService, logger), rbacService)
	spending.RegisterRoutes(api, spending.NewHandler(spendingService, logger), rbacService)
	revenue.RegisterRoutes(api, revenue.NewHandler(revenueService, logger), rbacService)
	dashboard.RegisterRoutes(api, dashboard.NewHandler(dashboardService, logger), rbacService)
	payroll.RegisterRoutes(api, payroll.NewHandler(payrollService, logger), rbacService, in.rdb)
	treasury.RegisterRoutes(api, treasury.NewHandler(treasuryService, logger), rbacService)
	rbac.RegisterRoutes(api, rbac.NewHandler(rbacService, logger))

	return dashboardService, nil
}
