// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup configures zerolog from LOG_LEVEL and LOG_FORMAT.
//   - level: trace, debug, info, warn, error (unknown values mean info)
//   - format: "pretty" or "console" for local work, anything else is JSON
//
// Caller information is only attached at debug level and below.
func Setup(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond

	var writer io.Writer = os.Stdout
	switch strings.ToLower(format) {
	case "pretty", "console":
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(writer).With().Timestamp().Str("app", "schoolhub")
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}
