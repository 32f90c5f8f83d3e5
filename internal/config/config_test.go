package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "armkeys.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.Tick() != DefaultTickInterval {
		t.Errorf("Tick() = %v, want %v", cfg.Tick(), DefaultTickInterval)
	}
	if cfg.Transport.Mode != TransportBLE {
		t.Errorf("Transport.Mode = %q, want %q", cfg.Transport.Mode, TransportBLE)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Profile != "cross" {
		t.Errorf("Profile = %q, want %q", cfg.Profile, "cross")
	}
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := writeConfig(t, `
profile: drumstick
tick_interval: 100
calibration:
  mode: average
  samples: 5
transport:
  mode: demo
keys:
  dry_run: true
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Profile != "drumstick" {
		t.Errorf("Profile = %q, want %q", cfg.Profile, "drumstick")
	}
	if cfg.Tick() != 100*time.Millisecond {
		t.Errorf("Tick() = %v, want 100ms", cfg.Tick())
	}
	if cfg.Calibration.Mode != CalibrationAverage || cfg.Calibration.Samples != 5 {
		t.Errorf("Calibration = %+v, want average/5", cfg.Calibration)
	}
	if cfg.Transport.Mode != TransportDemo {
		t.Errorf("Transport.Mode = %q, want %q", cfg.Transport.Mode, TransportDemo)
	}
	if cfg.Transport.Adapter != DefaultAdapter {
		t.Errorf("Transport.Adapter = %q, want default %q", cfg.Transport.Adapter, DefaultAdapter)
	}
	if !cfg.Keys.DryRun {
		t.Error("Keys.DryRun = false, want true")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want level debug with default format", cfg.Logging)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "profile: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty profile", func(c *Config) { c.Profile = "" }, "profile is required"},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, "tick_interval"},
		{"bad calibration mode", func(c *Config) { c.Calibration.Mode = "median" }, "calibration.mode"},
		{"average without samples", func(c *Config) {
			c.Calibration.Mode = CalibrationAverage
			c.Calibration.Samples = 0
		}, "calibration.samples"},
		{"bad transport", func(c *Config) { c.Transport.Mode = "usb" }, "transport.mode"},
		{"negative scan timeout", func(c *Config) { c.Transport.ScanTimeout = -1 }, "scan_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "armkeys.example.yaml"))
	if err != nil {
		t.Fatalf("Load(example) error = %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Errorf("example config = %+v, want defaults %+v", *cfg, *def)
	}
}
