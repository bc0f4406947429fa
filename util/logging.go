package util

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var LoggingEnabled = false

var logger = zap.NewNop()

// InitLogging replaces the no-op logger with one writing JSON to stderr.
// stdout is reserved for the protocol when serving over stdio.
func InitLogging(debug bool) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	LoggingEnabled = debug
	return nil
}

func Logger() *zap.Logger {
	return logger
}

// LogF writes a debug message when debug logging is enabled.
func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	logger.Debug(fmt.Sprintf(format, args...))
}

func Sync() {
	_ = logger.Sync()
}
