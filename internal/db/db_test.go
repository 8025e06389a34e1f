package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "seed.db")}}
	conn, err := Connect(context.Background(), cfg.Database)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(conn, cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("seed again: %v", err)
	}

	var count int64
	conn.Model(&models.Product{}).Count(&count)
	if count != int64(len(baseCatalog)) {
		t.Fatalf("expected %d products got %d", len(baseCatalog), count)
	}
	var fans int64
	conn.Model(&models.Product{}).Where("name = ?", "Ceiling Fan").Count(&fans)
	if fans != 1 {
		t.Fatalf("baseline product duplicated or missing: %d", fans)
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite3", SQLitePath: filepath.Join(t.TempDir(), "schema.db")}}
	conn, err := Connect(context.Background(), cfg.Database)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := Migrate(conn, cfg); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	for _, table := range requiredTables {
		if !conn.Migrator().HasTable(table) {
			t.Fatalf("table %s missing", table)
		}
	}
	if !conn.Migrator().HasColumn(&models.QuotationItem{}, "gst_rate_at_quote") {
		t.Fatalf("gst_rate_at_quote column missing")
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported driver error got %v", err)
	}
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{`"postgres://u:p@h:5432/db"`, "postgres://u:p@h:5432/db"},
		{"host=h   user=u dbname=db", "host=h user=u dbname=db sslmode=disable"},
		{"host=h user=u dbname=db sslmode=require", "host=h user=u dbname=db sslmode=require"},
		{"not a dsn", "not a dsn"},
	}
	for _, tt := range tests {
		if got := NormalizeDSN(tt.in); got != tt.want {
			t.Errorf("NormalizeDSN(%q) = %q want %q", tt.in, got, tt.want)
		}
	}
}

func TestToURLDSN(t *testing.T) {
	got := ToURLDSN("host=db port=5432 user=shop password=secret dbname=quotations sslmode=disable")
	if got != "postgres://shop:secret@db:5432/quotations?sslmode=disable" {
		t.Fatalf("ToURLDSN = %s", got)
	}
	if got := ToURLDSN("host=db"); got != "host=db" {
		t.Fatalf("incomplete DSN should be returned unchanged, got %s", got)
	}
}

func TestMaskDSN(t *testing.T) {
	if got := MaskDSN("host=db password=secret dbname=q"); got != "host=db password=*** dbname=q" {
		t.Errorf("MaskDSN kv = %s", got)
	}
	if got := MaskDSN("postgres://shop:secret@db:5432/q"); got != "postgres://shop:***@db:5432/q" {
		t.Errorf("MaskDSN url = %s", got)
	}
}
