// Package log configures the structured logger shared across the CLI.
// Dashboard mode keeps stdout reserved for JSON, so logs always go to
// stderr regardless of mode.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger writing JSON lines to stderr. verbose lowers
// the level to Debug; otherwise Info is the floor.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want CLI logging side effects.
func Nop() *zap.Logger {
	return zap.NewNop()
}
