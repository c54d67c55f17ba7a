// File: internal/services/logger_test.go
package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerWithLevelFilters(t *testing.T) {
	l := NewLoggerWithLevel("test", zerolog.WarnLevel)
	assert.Equal(t, zerolog.WarnLevel, l.logger.GetLevel())
}

func TestNewLoggerDefaultsToAllLevels(t *testing.T) {
	l := NewLogger("test")
	assert.Equal(t, zerolog.TraceLevel, l.logger.GetLevel())
}
