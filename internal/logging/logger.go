package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	once    sync.Once
	initErr error
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel) // Default to info for a long-running daemon
)

// initLogger performs lazy initialization of the logger
func initLogger() {
	once.Do(func() {
		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.DisableStacktrace = true
		config.DisableCaller = true
		config.Level = level

		var err error
		logger, err = config.Build()
		if err != nil {
			// Fallback to no-op logger instead of panicking
			logger = zap.NewNop()
			initErr = err
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
		}
		sugar = logger.Sugar()
	})
}

// SetLevel sets the logging level
// verbosity: 0 = info, 1+ = debug (-v, -vv)
func SetLevel(verbosity int) {
	if verbosity > 0 {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// GetLogger returns the structured logger
func GetLogger() *zap.Logger {
	initLogger()
	return logger
}

// Sync flushes any buffered log entries
func Sync() {
	initLogger()
	_ = logger.Sync()
	_ = sugar.Sync()
}

// InitError returns any error that occurred during logger initialization
func InitError() error {
	initLogger()
	return initErr
}

// Info logs an informational message
func Info(msg string, fields ...zap.Field) {
	initLogger()
	logger.Info(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	initLogger()
	logger.Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	initLogger()
	logger.Error(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	initLogger()
	logger.Debug(msg, fields...)
}

// Infof logs a formatted informational message (sugared)
func Infof(template string, args ...interface{}) {
	initLogger()
	sugar.Infof(template, args...)
}

// Warnf logs a formatted warning message (sugared)
func Warnf(template string, args ...interface{}) {
	initLogger()
	sugar.Warnf(template, args...)
}
