package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Devices
	MaxDevices = 3 // registration slots; one keyset per slot

	// Pipeline
	DefaultTickInterval = 50 * time.Millisecond // 20 Hz finalize-and-emit cadence
	KeyHistorySize      = 32                    // emitted keys remembered per device for display

	// Calibration
	DefaultCalibrationSamples = 10 // used by the averaging calibrator

	// Transport
	DefaultAdapter     = "hci0"
	DefaultScanTimeout = 30 * time.Second

	// Demo mode
	DemoDevices      = 3
	DemoSamplePeriod = 20 * time.Millisecond // 50 Hz, the armband's IMU rate
	DemoPosePeriod   = 1500 * time.Millisecond

	// TUI
	TargetFPS = 20

	// App
	AppName    = "ARMKEYS"
	AppVersion = "1.0"
)

// Transport modes.
const (
	TransportBLE  = "ble"
	TransportDemo = "demo"
)

// Calibration modes.
const (
	CalibrationFirstSample = "first-sample"
	CalibrationAverage     = "average"
)

// Config is the runtime configuration. It is loaded from an optional YAML file
// and then overridden by command-line flags.
type Config struct {
	Profile      string            `yaml:"profile"`
	TickInterval int               `yaml:"tick_interval"` // milliseconds
	Calibration  CalibrationConfig `yaml:"calibration"`
	Transport    TransportConfig   `yaml:"transport"`
	Keys         KeysConfig        `yaml:"keys"`
	Logging      LoggingConfig     `yaml:"logging"`
}

// CalibrationConfig selects how each armband's baseline is captured.
type CalibrationConfig struct {
	Mode    string `yaml:"mode"`
	Samples int    `yaml:"samples"`
}

// TransportConfig selects where armband events come from.
type TransportConfig struct {
	Mode        string `yaml:"mode"`
	Adapter     string `yaml:"adapter"`
	ScanTimeout int    `yaml:"scan_timeout"` // seconds
}

// KeysConfig controls keystroke injection.
type KeysConfig struct {
	DryRun bool `yaml:"dry_run"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"` // stdout, stderr, or a file path
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Profile:      "cross",
		TickInterval: int(DefaultTickInterval / time.Millisecond),
		Calibration: CalibrationConfig{
			Mode:    CalibrationFirstSample,
			Samples: DefaultCalibrationSamples,
		},
		Transport: TransportConfig{
			Mode:        TransportBLE,
			Adapter:     DefaultAdapter,
			ScanTimeout: int(DefaultScanTimeout / time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Profile == "" {
		errs = append(errs, errors.New("profile is required"))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %d", c.TickInterval))
	}
	switch c.Calibration.Mode {
	case CalibrationFirstSample:
	case CalibrationAverage:
		if c.Calibration.Samples < 1 {
			errs = append(errs, fmt.Errorf("calibration.samples must be at least 1, got %d", c.Calibration.Samples))
		}
	default:
		errs = append(errs, fmt.Errorf("calibration.mode must be %q or %q, got %q",
			CalibrationFirstSample, CalibrationAverage, c.Calibration.Mode))
	}
	switch c.Transport.Mode {
	case TransportBLE, TransportDemo:
	default:
		errs = append(errs, fmt.Errorf("transport.mode must be %q or %q, got %q",
			TransportBLE, TransportDemo, c.Transport.Mode))
	}
	if c.Transport.ScanTimeout < 0 {
		errs = append(errs, fmt.Errorf("transport.scan_timeout must not be negative, got %d", c.Transport.ScanTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Tick returns the finalize-and-emit interval.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.TickInterval) * time.Millisecond
}

// ScanTimeout returns how long the BLE transport scans for armbands. Zero
// means scan until stopped.
func (c *Config) ScanTimeout() time.Duration {
	return time.Duration(c.Transport.ScanTimeout) * time.Second
}
