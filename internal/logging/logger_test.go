package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"armkeys.klederson.com/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_FileOutputJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armkeys.log")
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", Output: path}, "9.9")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("paired", "device", 0)
	logger.Debug("filtered out")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), data)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["service"] != "armkeys" || rec["version"] != "9.9" || rec["msg"] != "paired" {
		t.Errorf("record = %v, want service/version/msg defaults", rec)
	}
}

func TestNew_BadFilePath(t *testing.T) {
	_, err := New(config.LoggingConfig{Output: filepath.Join(t.TempDir(), "missing", "x.log")}, "1")
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf).With("component", "ble")
	logger.Info("scanning")

	if !strings.Contains(buf.String(), "component=ble") {
		t.Errorf("output %q missing component attribute", buf.String())
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing to see")
}
