// Package log holds the process-wide zap logger.
package log

import (
	"go.uber.org/zap"
)

var defaultLogger = zap.NewNop()

// Get returns the process-wide logger. It discards everything until Set is called.
func Get() *zap.Logger {
	return defaultLogger
}

// Set installs a console logger on stderr. Debug enables debug-level output.
// On error the previous logger stays in place.
func Set(debug bool) error {
	level := zap.WarnLevel
	if debug {
		level = zap.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      debug,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	defaultLogger = logger
	return nil
}

// Flush writes out any buffered log entries.
func Flush() {
	_ = defaultLogger.Sync()
}
