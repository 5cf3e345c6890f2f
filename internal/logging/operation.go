package logging

import (
	"context"

	"go.uber.org/zap"
)

// Logger logs service operations with the request id of the caller.
type Logger struct {
	z *zap.SugaredLogger
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	return &Logger{z: FromContext(ctx).Sugar()}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.z.Errorw("operation failed", "operation", operation, "error", err)
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.z.With("operation", operation).Errorf(format, args...)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.z.With("operation", operation).Infof(format, args...)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.z.With("operation", operation).Warnf(format, args...)
}

// Zap exposes the underlying logger for structured fields.
func (l *Logger) Zap() *zap.Logger {
	return l.z.Desugar()
}
