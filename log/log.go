package log

import (
	"go.uber.org/zap"
)

var logger = newDefault()

func newDefault() *zap.Logger {
	l, _ := zap.NewProduction(zap.AddCallerSkip(1))
	return l
}

// SetLogger substitutes the package logger, e.g. with a development config.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l.WithOptions(zap.AddCallerSkip(1))
	}
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

func Sync() {
	_ = logger.Sync()
}
