package main

import (
	"testing"

	"armkeys.klederson.com/internal/config"
)

func TestLoadConfig_DryRunFlag(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantDryRun bool
		wantMode   string
	}{
		{"defaults inject keys", nil, false, config.TransportBLE},
		{"demo implies dry run", []string{"--demo"}, true, config.TransportDemo},
		{"demo with explicit injection", []string{"--demo", "--dry-run=false"}, false, config.TransportDemo},
		{"dry run without demo", []string{"--dry-run"}, true, config.TransportBLE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags(%v): %v", tt.args, err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if cfg.Keys.DryRun != tt.wantDryRun {
				t.Errorf("DryRun = %v, want %v", cfg.Keys.DryRun, tt.wantDryRun)
			}
			if cfg.Transport.Mode != tt.wantMode {
				t.Errorf("Transport.Mode = %q, want %q", cfg.Transport.Mode, tt.wantMode)
			}
		})
	}
}
