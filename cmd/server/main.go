package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/diewo77/go-quotations/httpx"
	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/db"
	"github.com/diewo77/go-quotations/internal/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Seed the product catalog and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.Setup(cfg.Log, cfg.App.Dev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.Migrate(dbConn, cfg); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	if *migrateOnlyFlag {
		logger.Info("migrations completed successfully")
		return
	}

	if *seedOnlyFlag || cfg.App.Seed {
		if err := db.Seed(dbConn); err != nil {
			logger.Fatal("seeding failed", zap.Error(err))
		}
		if *seedOnlyFlag {
			logger.Info("seeding completed successfully")
			return
		}
	}

	app, err := NewApp(dbConn, cfg)
	if err != nil {
		logger.Fatal("failed to build application", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpx.WithLogging(app),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped gracefully")
}
