// Package logging provides structured logging setup using log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv enables debug logging when set to "1".
const DebugEnv = "NETSPEED_DEBUG"

// Level represents the logging verbosity level.
type Level int

const (
	// LevelInfo is the default logging level for normal operation.
	LevelInfo Level = iota
	// LevelDebug enables verbose debug output.
	LevelDebug
)

// Setup initializes the global slog logger with the specified level.
// Logs go to stderr so stdout carries only the status line.
func Setup(level Level) {
	SetupWriter(os.Stderr, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level Level) {
	slogLevel := slog.LevelInfo
	if level == LevelDebug {
		slogLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}

// SetupFromEnv initializes the logger based on environment variables.
// Set NETSPEED_DEBUG=1 to enable debug logging.
func SetupFromEnv() {
	level := LevelInfo
	if os.Getenv(DebugEnv) == "1" {
		level = LevelDebug
	}
	Setup(level)
}
