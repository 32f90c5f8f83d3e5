// Package logging wraps log/slog with armkeys defaults.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"armkeys.klederson.com/internal/config"
)

// Logger wraps slog.Logger. It is safe for concurrent use.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// New creates a Logger from cfg.
//
// Output is "stdout", "stderr", or a file path opened for append. The format
// is "text" or "json" (default). Every record carries the service name and
// version.
func New(cfg config.LoggingConfig, version string) (*Logger, error) {
	var (
		output io.Writer
		closer io.Closer
	)
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		output = f
		closer = f
	}

	return &Logger{
		Logger: slog.New(newHandler(output, cfg.Format, parseLevel(cfg.Level)).WithAttrs([]slog.Attr{
			slog.String("service", "armkeys"),
			slog.String("version", version),
		})),
		closer: closer,
	}, nil
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(format) == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// parseLevel converts a string log level to slog.Level.
// Defaults to info if unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a new Logger with additional default attributes.
//
//	bleLogger := logger.With("component", "ble")
//	bleLogger.Info("scanning") // Includes component=ble
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Default creates a logger for use before configuration is loaded.
func Default() *Logger {
	l, _ := New(config.LoggingConfig{Level: "info", Format: "text", Output: "stderr"}, config.AppVersion)
	return l
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// NewWriter returns a logger writing text records at debug level to w.
// Tests use it to assert on log output.
func NewWriter(w io.Writer) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))}
}
