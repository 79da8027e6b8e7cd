// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "cargo-quote"

// ParseLevel maps a configured level name to zerolog. Unknown or empty
// names give info.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// New builds a logger writing to w: JSON lines tagged with the service
// name, or human-readable console output when pretty is set.
func New(w io.Writer, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	ctx := zerolog.New(w).With().Timestamp()
	if !pretty {
		ctx = ctx.Str("service", serviceName)
	}
	return ctx.Logger()
}

// Init installs a stderr logger at level as the global logger.
func Init(level string, pretty bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = New(os.Stderr, pretty)
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// Component tags the global logger with a component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// ForRequest tags the global logger with a request ID. An empty ID is omitted.
func ForRequest(requestID string) zerolog.Logger {
	if requestID == "" {
		return log.Logger
	}
	return log.Logger.With().Str("request_id", requestID).Logger()
}
