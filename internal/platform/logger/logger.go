// Package logger provides a configured zerolog logger.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a new zerolog.Logger configured for the application.
// The level is read from HOUREI_LOG_LEVEL and defaults to info.
func New(serviceName string) zerolog.Logger {
	return zerolog.New(os.Stdout).Level(parseLevel(os.Getenv("HOUREI_LOG_LEVEL"))).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
