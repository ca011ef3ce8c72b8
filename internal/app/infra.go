package app

import (
	"go-bossboard/internal/config"
	"go-bossboard/internal/migrate"
	"go-bossboard/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infra holds the connections shared by every process.
// rdb is nil when REDIS_ADDR is empty.
type infra struct {
	db  *gorm.DB
	rdb *redis.Client
}

func postgresOptions(cfg *config.Config) connection.PostgresOptions {
	return connection.PostgresOptions{
		Host:     cfg.DB.Host,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Name:     cfg.DB.Name,
		Port:     cfg.DB.Port,
		SSLMode:  cfg.DB.SSLMode,
	}
}

func connectInfra(cfg *config.Config, logger *zap.Logger, runMigrations bool) (*infra, error) {
	opts := postgresOptions(cfg)

	db, err := connection.ConnectGORMWithRetry(opts, cfg.DB.MaxRetries, logger)
	if err != nil {
		return nil, err
	}
	in := &infra{db: db}

	if runMigrations {
		if err := migrate.Up(cfg.Migrate.Path, opts.URL(), logger); err != nil {
			in.Close()
			return nil, err
		}
	}

	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set; idempotency keys stay in-process and payroll locks use Postgres advisory locks")
		return in, nil
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.DB.MaxRetries, logger)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.rdb = rdb
	return in, nil
}

func (i *infra) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if sqlDB, err := i.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
