package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. The root command
// configures it once in PersistentPreRun; the probes and resolvers log
// through the package helpers below.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// Setup configures the logger from the CLI flags. Verbose lowers the
// level to debug; jsonOutput switches the handler. A nil writer means
// stderr.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	if jsonOutput {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// Debug traces probe and resolution steps; visible only with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn reports a degraded signal, such as an overlay query that hit
// its deadline. Always visible.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
