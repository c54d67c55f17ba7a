// File: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "diagnosis.db", cfg.DatabasePath)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ProviderBearer, cfg.ProviderKind)
	assert.Equal(t, "glm-4", cfg.LLMModel)
	assert.Equal(t, "glm-4v", cfg.VisionModel)
	assert.Equal(t, "general", cfg.SignedModel)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "SIGNED")
	t.Setenv("SIGNED_API_KEY", "k")
	t.Setenv("SIGNED_API_SECRET", "s")
	t.Setenv("SIGNED_BASE_URL", "https://gw.example.com/v1/chat")
	t.Setenv("AI_TIMEOUT_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()
	assert.Equal(t, ProviderSigned, cfg.ProviderKind)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "k", cfg.SignedAPIKey)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
}

func TestLoadIgnoresUnparsableTimeout(t *testing.T) {
	t.Setenv("AI_TIMEOUT_SECONDS", "not-a-number")
	cfg := Load()
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
}
