package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"armkeys.klederson.com/internal/app"
	"armkeys.klederson.com/internal/config"
	"armkeys.klederson.com/internal/gesture"
	"armkeys.klederson.com/internal/logging"
	"armkeys.klederson.com/internal/transport"
)

// tuiLogFile receives log records while the TUI owns the terminal.
const tuiLogFile = "armkeys.log"

var (
	flagConfig      string
	flagDemo        bool
	flagHeadless    bool
	flagProfile     string
	flagCalibration string
	flagDryRun      bool
	flagAdapter     string
	flagTick        time.Duration
	flagLogLevel    string
	flagLogFormat   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Press enter to continue.")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "armkeys",
		Short: "armkeys - play the keyboard with Myo armbands",
		Long: `armkeys connects to up to three Myo armbands over Bluetooth Low Energy and
turns arm gestures into key presses. Each armband gets its own keyset; the
first orientation sample after pairing becomes its resting baseline.

Requires sudo or CAP_NET_ADMIN capability for Bluetooth, and write access to
/dev/uinput for key injection on Linux.
Use --demo for synthetic armbands; demo mode logs keys instead of typing them
unless --dry-run=false is given.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          run,
	}

	f := rootCmd.Flags()
	f.StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	f.BoolVar(&flagDemo, "demo", false, "Run with synthetic armbands (no Bluetooth required)")
	f.BoolVar(&flagHeadless, "headless", false, "Run without the TUI, logging key presses")
	f.StringVar(&flagProfile, "profile", gesture.DefaultProfile, "Gesture profile (see 'armkeys profiles')")
	f.StringVar(&flagCalibration, "calibration", config.CalibrationFirstSample, "Calibration mode: first-sample or average")
	f.BoolVar(&flagDryRun, "dry-run", false, "Log key presses instead of injecting them (default true with --demo)")
	f.StringVar(&flagAdapter, "adapter", config.DefaultAdapter, "Bluetooth adapter to use")
	f.DurationVar(&flagTick, "tick", config.DefaultTickInterval, "Gesture evaluation interval")
	f.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	f.StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "profiles",
		Short: "List the built-in gesture profiles and their keysets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printProfiles(cmd)
		},
	})

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, config.AppVersion)
	if err != nil {
		return err
	}
	defer log.Close()

	p, err := app.BuildPipeline(cfg, log)
	if err != nil {
		return err
	}

	tr, err := transport.New(cfg, log)
	if err != nil {
		return err
	}

	if flagHeadless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.RunHeadless(ctx, p, tr, cfg.Tick(), log)
	}

	model := app.New(p, tr, sourceLabel(cfg), cfg.Tick())
	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start the transport with reference to the tea program
	if err := model.StartTransport(prog); err != nil {
		if cfg.Transport.Mode == config.TransportBLE {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./armkeys")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./armkeys")
			fmt.Fprintln(os.Stderr, "  ./armkeys --demo    (synthetic armbands, no hardware needed)")
		}
		return err
	}

	_, err = prog.Run()
	return err
}

// loadConfig reads the config file, then applies the flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("profile") {
		cfg.Profile = flagProfile
	}
	if f.Changed("calibration") {
		cfg.Calibration.Mode = flagCalibration
	}
	if f.Changed("dry-run") {
		cfg.Keys.DryRun = flagDryRun
	}
	if f.Changed("adapter") {
		cfg.Transport.Adapter = flagAdapter
	}
	if f.Changed("tick") {
		cfg.TickInterval = int(flagTick / time.Millisecond)
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = flagLogFormat
	}
	if flagDemo {
		cfg.Transport.Mode = config.TransportDemo
		// Synthetic armbands must not type into the desktop unless asked to.
		if !f.Changed("dry-run") {
			cfg.Keys.DryRun = true
		}
	}

	// Keep log lines off the alt screen.
	if !flagHeadless {
		switch strings.ToLower(cfg.Logging.Output) {
		case "", "stdout", "stderr":
			cfg.Logging.Output = tuiLogFile
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sourceLabel(cfg *config.Config) string {
	if cfg.Transport.Mode == config.TransportDemo {
		return "DEMO"
	}
	return "BLE " + cfg.Transport.Adapter
}

func printProfiles(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	for _, p := range gesture.Profiles() {
		marker := " "
		if p.Name == gesture.DefaultProfile {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-10s %s\n", marker, p.Name, p.Description)
		for slot, k := range p.Keysets {
			fmt.Fprintf(out, "    armband %d: %s\n", slot, k)
		}
	}
}
