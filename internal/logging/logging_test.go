package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/go-quotations/internal/config"
	"go.uber.org/zap"
)

func TestSetupWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotations.log")
	logger, err := Setup(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}, false)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	zap.L().Info("quotation issued", zap.String("number", "QTN-20261018-ABC"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "QTN-20261018-ABC") {
		t.Fatalf("log line missing from %s", data)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(config.LogConfig{Level: "loud"}, true); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
