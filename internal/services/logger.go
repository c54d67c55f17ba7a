// File: internal/services/logger.go
package services

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger defines the common logging interface for all services.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ZerologLogger is the production Logger, emitting structured JSON on
// stdout with a service tag.
type ZerologLogger struct {
	logger zerolog.Logger
}

func NewLogger(service string) *ZerologLogger {
	zl := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Logger()
	return &ZerologLogger{logger: zl}
}

// NewLoggerWithLevel creates a Logger that drops events below level.
func NewLoggerWithLevel(service string, level zerolog.Level) *ZerologLogger {
	l := NewLogger(service)
	l.logger = l.logger.Level(level)
	return l
}

func (z *ZerologLogger) Info(msg string, keysAndValues ...interface{}) {
	z.emit(z.logger.Info(), msg, keysAndValues)
}

func (z *ZerologLogger) Error(msg string, keysAndValues ...interface{}) {
	z.emit(z.logger.Error(), msg, keysAndValues)
}

func (z *ZerologLogger) Debug(msg string, keysAndValues ...interface{}) {
	z.emit(z.logger.Debug(), msg, keysAndValues)
}

func (z *ZerologLogger) Warn(msg string, keysAndValues ...interface{}) {
	z.emit(z.logger.Warn(), msg, keysAndValues)
}

func (z *ZerologLogger) emit(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	event.Msg(msg)
}

// NoOpLogger discards everything; used in tests.
type NoOpLogger struct{}

func (NoOpLogger) Info(string, ...interface{})  {}
func (NoOpLogger) Error(string, ...interface{}) {}
func (NoOpLogger) Debug(string, ...interface{}) {}
func (NoOpLogger) Warn(string, ...interface{})  {}
