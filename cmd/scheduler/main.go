package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-bossboard/internal/app"
	"go-bossboard/internal/config"
	"go-bossboard/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunScheduler(ctx, cfg, logger); err != nil {
		logger.Fatal("run scheduler failed", zap.Error(err))
	}
}
