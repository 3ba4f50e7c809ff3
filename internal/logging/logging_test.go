package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zenvertao/2048-game/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "t2048.log")
	cfg := config.LogConfig{File: path, Level: "debug", MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	logger, closer, err := New(cfg, Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("board ready", "tiles", 2)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "board ready") || !strings.Contains(out, "tiles=2") {
		t.Errorf("log output = %q, want message and key/value", out)
	}
	if !strings.Contains(out, "t2048") {
		t.Errorf("log output = %q, want default prefix", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t2048.log")
	logger, closer, err := New(config.LogConfig{File: path, Level: "warn"}, Options{Prefix: "test"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	closer.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("warn record missing")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "chatty"}, Options{}); err == nil {
		t.Error("New() with unknown level should fail")
	}
}

func TestNewWithoutFile(t *testing.T) {
	logger, closer, err := New(config.LogConfig{}, Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Error("dropped")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
