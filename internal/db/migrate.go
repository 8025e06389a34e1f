package db

import (
	"errors"
	"fmt"

	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrationsDir holds the versioned SQL files used when MIGRATIONS is on.
const MigrationsDir = "migrations"

var requiredTables = []string{"products", "quotations", "quotation_items"}

// Migrate brings the schema up to date. With MIGRATIONS enabled on
// PostgreSQL it runs the SQL files through golang-migrate; otherwise it
// falls back to AutoMigrate.
func Migrate(conn *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations && driverName(cfg.Database) == "postgres" {
		zap.L().Info("running sql migrations", zap.String("dir", MigrationsDir))
		if err := RunSQLMigrations(ToURLDSN(NormalizeDSN(cfg.Database.DSN())), MigrationsDir); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := AutoMigrate(conn); err != nil {
		return err
	}

	for _, table := range requiredTables {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// AutoMigrate creates or updates the tables from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range []any{&models.Product{}, &models.Quotation{}, &models.QuotationItem{}} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// RunSQLMigrations applies every pending migration found in dir.
func RunSQLMigrations(databaseURL, dir string) error {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			zap.L().Warn("closing migrator", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
