// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `envconfig:"SERVER"`
	Database  DatabaseConfig  `envconfig:"DB"`
	App       AppConfig       `envconfig:"APP"`
	Log       LogConfig       `envconfig:"LOG"`
	Shop      ShopConfig      `envconfig:"SHOP"`
	Quotation QuotationConfig `envconfig:"QUOTATION"`
}

// ServerConfig holds HTTP server settings. PORT is accepted as well as SERVER_PORT.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"15s"`
	WriteTimeout    time.Duration `split_words:"true" default:"15s"`
	IdleTimeout     time.Duration `split_words:"true" default:"60s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// DatabaseConfig holds connection settings. Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver     string `default:"postgres"`
	Host       string `default:"localhost"`
	Port       int    `default:"5432"`
	User       string `default:"quotations"`
	Password   string `default:"quotations123"`
	Name       string `default:"quotations"`
	SSLMode    string `default:"disable"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"quotations.db"`
	// URLOverride, when set (DB_DATABASE_URL or DATABASE_URL), replaces the individual fields.
	URLOverride string `envconfig:"DATABASE_URL"`
	Debug       bool
}

// AppConfig holds application-level settings. DEV, MIGRATIONS and SEED are
// accepted without the APP_ prefix.
type AppConfig struct {
	Dev        bool `envconfig:"DEV" default:"true"`
	Migrations bool `envconfig:"MIGRATIONS"`
	Seed       bool `envconfig:"SEED"`
}

// LogConfig controls the zap logger. An empty File logs to stdout only.
type LogConfig struct {
	Level      string `default:"info"`
	File       string
	MaxSizeMB  int `split_words:"true" default:"64"`
	MaxBackups int `split_words:"true" default:"7"`
	MaxAgeDays int `split_words:"true" default:"7"`
}

// ShopConfig is printed on quotations.
type ShopConfig struct {
	Name    string `default:"Electric Mart" json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// QuotationConfig tunes quotation issuance.
type QuotationConfig struct {
	NodeID         int64         `split_words:"true" default:"1"`
	MaxAttempts    int           `split_words:"true" default:"2"`
	PersistTimeout time.Duration `split_words:"true" default:"5s"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	if d.URLOverride != "" {
		return d.URLOverride
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	if d.URLOverride != "" {
		return d.URLOverride
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
