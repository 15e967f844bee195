package logging

import (
	"io"
	"log/slog"
)

// Verbose reports whether debug logging is enabled.
var Verbose bool

var logger = slog.Default()

// Setup configures the structured debug logger. Debug messages are only
// emitted when verbose is true; jsonOutput switches the handler from text
// to JSON. Output goes to w (normally os.Stderr).
func Setup(verbose, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// Debug logs a debug message with key/value attributes.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message with key/value attributes.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message with key/value attributes.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message with key/value attributes.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
