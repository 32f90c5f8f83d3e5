package app

import (
	"fmt"

	"armkeys.klederson.com/internal/config"
	"armkeys.klederson.com/internal/device"
	"armkeys.klederson.com/internal/gesture"
	"armkeys.klederson.com/internal/keys"
	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/orientation"
	"armkeys.klederson.com/internal/pipeline"
	"armkeys.klederson.com/internal/pose"
)

// BuildPipeline assembles the pipeline described by cfg. With dry run off
// this creates the OS virtual keyboard.
func BuildPipeline(cfg *config.Config, log *logging.Logger) (*pipeline.Pipeline, error) {
	profile, err := gesture.Lookup(cfg.Profile)
	if err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	calibrator, err := NewCalibrator(cfg.Calibration)
	if err != nil {
		return nil, err
	}

	injector, err := newInjector(cfg.Keys, log.With("component", "keys"))
	if err != nil {
		return nil, err
	}

	log.Info("pipeline ready",
		"profile", profile.Name,
		"calibration", calibrator.Name(),
		"dry_run", cfg.Keys.DryRun,
		"tick", cfg.Tick(),
	)

	return pipeline.New(
		device.NewRegistry(profile, config.MaxDevices),
		profile,
		calibrator,
		keys.NewEmitter(injector),
		pose.NewController(),
		log.With("component", "pipeline"),
	), nil
}

// NewCalibrator returns the calibrator selected by cfg.
func NewCalibrator(cfg config.CalibrationConfig) (orientation.Calibrator, error) {
	switch cfg.Mode {
	case "", config.CalibrationFirstSample:
		return orientation.FirstSample{}, nil
	case config.CalibrationAverage:
		return orientation.Averaging{Samples: cfg.Samples}, nil
	default:
		return nil, fmt.Errorf("unknown calibration mode %q", cfg.Mode)
	}
}

func newInjector(cfg config.KeysConfig, log *logging.Logger) (keys.Injector, error) {
	if cfg.DryRun {
		return keys.NewLogInjector(log), nil
	}
	return keys.NewKeybdInjector()
}
