package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/tour-desk/pkg/logging"
)

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level    logging.Level
		expected slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.ToSlogLevel(); got != tt.expected {
				t.Errorf("ToSlogLevel() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg logging.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.Level != logging.LevelInfo {
			t.Errorf("Level = %q, want info", cfg.Level)
		}
		if cfg.Format != logging.FormatText {
			t.Errorf("Format = %q, want text", cfg.Format)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_LOG_LEVEL", "debug")
		t.Setenv("TEST_LOG_FORMAT", "json")

		var cfg logging.Config
		env := &logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if cfg.Level != logging.LevelDebug || cfg.Format != logging.FormatJSON {
			t.Errorf("got level=%q format=%q", cfg.Level, cfg.Format)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := logging.Config{Level: "loud"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize() succeeded for invalid level")
		}
	})
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON}

	logger := logging.NewWithWriter(cfg, &buf)
	logger.Debug("hidden")
	logger.Info("visible", "system", "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if record["msg"] != "visible" || record["system"] != "test" {
		t.Errorf("unexpected record %v", record)
	}
}
