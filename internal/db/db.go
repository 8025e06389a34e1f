// Package db opens the database, applies the schema and seeds the catalog.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/go-quotations/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// Connect opens the configured database, retrying a few times so a
// PostgreSQL container has time to start, and pings it once.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, target, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	zap.L().Info("connecting to database", zap.String("driver", driverName(cfg)), zap.String("dsn", MaskDSN(target)))
	var conn *gorm.DB
	for i := 1; i <= connectAttempts; i++ {
		conn, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		zap.L().Warn("database connection failed, retrying", zap.Int("attempt", i), zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after %d attempts: %w", connectAttempts, err)
	}

	if err := Ping(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Ping checks connectivity with a short deadline.
func Ping(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("db handle: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping failed: %w", err)
	}
	return nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch driverName(cfg) {
	case "postgres":
		dsn := NormalizeDSN(cfg.DSN())
		return postgres.Open(dsn), dsn, nil
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, "", errors.New("DB_SQLITE_PATH is empty")
		}
		return sqlite.Open(cfg.SQLitePath), cfg.SQLitePath, nil
	default:
		return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func driverName(cfg config.DatabaseConfig) string {
	switch d := strings.ToLower(strings.TrimSpace(cfg.Driver)); d {
	case "", "postgres", "postgresql", "pgx":
		return "postgres"
	case "sqlite", "sqlite3":
		return "sqlite"
	default:
		return d
	}
}
