package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arcade.log")

	logger, closeFn, err := New(Options{Level: "debug", File: path, Prefix: "arcade"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("session started", "game", "cube-racer")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	if !strings.Contains(string(data), "cube-racer") {
		t.Errorf("log file does not contain the record: %q", data)
	}
}

func TestNewLevel(t *testing.T) {
	logger, _, err := New(Options{Level: "warn", Quiet: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, expected warn", logger.GetLevel())
	}

	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("invalid level should fail")
	}
}
