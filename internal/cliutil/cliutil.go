// Package cliutil holds the flag defaults and logger setup shared by the
// binaries under cmd/.
package cliutil

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvDepth    = "CHESS_DEPTH"
	EnvTTBits   = "CHESS_TT_BITS"
	EnvLogLevel = "CHESS_LOG_LEVEL"
)

// EnvInt returns the integer in the environment variable name, or def when
// it is unset or malformed.
func EnvInt(name string, def int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvString returns the environment variable name, or def when it is unset.
func EnvString(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

// NewLogger builds a console logger on stderr at the named level and sets
// that level globally. Callers assign the result to log.Logger themselves.
func NewLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(lvl)
	return logger, nil
}
