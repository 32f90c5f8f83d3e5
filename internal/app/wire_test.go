package app

import (
	"testing"

	"armkeys.klederson.com/internal/config"
	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/orientation"
)

func TestNewCalibrator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CalibrationConfig
		want    string
		wantErr bool
	}{
		{"default", config.CalibrationConfig{}, "first-sample", false},
		{"first sample", config.CalibrationConfig{Mode: config.CalibrationFirstSample}, "first-sample", false},
		{"average", config.CalibrationConfig{Mode: config.CalibrationAverage, Samples: 5}, "average", false},
		{"unknown", config.CalibrationConfig{Mode: "median"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCalibrator(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCalibrator() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.want)
			}
		})
	}

	c, _ := NewCalibrator(config.CalibrationConfig{Mode: config.CalibrationAverage, Samples: 5})
	if avg, ok := c.(orientation.Averaging); !ok || avg.Samples != 5 {
		t.Errorf("calibrator = %#v, want Averaging{5}", c)
	}
}

func TestBuildPipeline_DryRun(t *testing.T) {
	cfg := config.Default()
	cfg.Profile = "drumstick"
	cfg.Keys.DryRun = true

	p, err := BuildPipeline(cfg, logging.Nop())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if p.Profile().Name != "drumstick" {
		t.Errorf("profile = %q, want drumstick", p.Profile().Name)
	}
	if p.Registry().Limit() != config.MaxDevices {
		t.Errorf("Limit() = %d, want %d", p.Registry().Limit(), config.MaxDevices)
	}
}

func TestBuildPipeline_UnknownProfile(t *testing.T) {
	cfg := config.Default()
	cfg.Profile = "tuba"
	cfg.Keys.DryRun = true
	if _, err := BuildPipeline(cfg, logging.Nop()); err == nil {
		t.Error("BuildPipeline() should reject an unknown profile")
	}
}
