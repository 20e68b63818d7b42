// Package logger builds the process-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns the root logger. Development environments get the pretty
// console writer; everything else ships JSON for log aggregators.
func New(env string) zerolog.Logger {
	switch env {
	case "development", "dev", "local":
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	default:
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
