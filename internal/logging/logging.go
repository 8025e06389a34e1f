// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"os"

	"github.com/diewo77/go-quotations/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds a logger from cfg, installs it as the zap global and returns
// it. Dev mode logs human-readable output; otherwise JSON. When cfg.File is
// set, a JSON copy goes to a rotated file.
func Setup(cfg config.LogConfig, dev bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	var zapConfig zap.Config
	if dev {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	var logger *zap.Logger
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		stdoutEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		if dev {
			stdoutEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		}
		core := zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(rotated), zapConfig.Level),
			zapcore.NewCore(stdoutEncoder, zapcore.AddSync(os.Stdout), zapConfig.Level),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
