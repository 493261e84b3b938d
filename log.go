package guiplatform

import (
	"log/slog"
	"os"
)

// logLevel controls the log level for backend debug logging.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for the backend.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// Verbose reports whether debug logging is enabled.
func Verbose() bool {
	return logLevel.Level() <= slog.LevelDebug
}

var baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

var (
	backendLogger  = baseLogger.With("component", "backend")
	viewportLogger = baseLogger.With("component", "viewport")
)

// NewLogger returns a logger for component that follows SetVerbose.
func NewLogger(component string) *slog.Logger {
	return baseLogger.With("component", component)
}
