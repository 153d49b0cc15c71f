package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"warehouse-pos/internal/cli"
	"warehouse-pos/internal/config"
	"warehouse-pos/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := godotenv.Load(); err != nil {
		// Not fatal: the environment may already carry the settings.
		log.Println("INFO: .env file not found or error loading, relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Error loading configuration: %v", err)
		return cli.ExitFailure
	}

	appLogger, err := logger.New(cfg.AppEnv, cfg.Logger)
	if err != nil {
		log.Printf("FATAL: Error building logger: %v", err)
		return cli.ExitFailure
	}
	defer func() { _ = appLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Debug("starting", zap.String("app_env", cfg.AppEnv), zap.Strings("args", os.Args[1:]))
	return cli.Run(ctx, cfg, appLogger, os.Args[1:], os.Stdout, os.Stderr)
}
