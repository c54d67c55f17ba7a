// File: internal/services/provider/config.go
package provider

import "time"

type Config struct {
	APIKey      string
	APISecret   string // signed variant only
	BaseURL     string
	Model       string
	VisionModel string
	Timeout     time.Duration
}

// DefaultConfig allows one synchronous round-trip of up to 60 seconds
// per provider call, with no automatic retries.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("provider API key is required")
	}
	if c.BaseURL == "" {
		return NewConfigError("provider base URL is required")
	}
	if c.Model == "" {
		return NewConfigError("provider model name is required")
	}
	if c.Timeout <= 0 {
		return NewConfigError("provider timeout must be positive")
	}
	return nil
}

// ValidateSigned adds the requirements of the signed-query-string
// authentication scheme.
func (c *Config) ValidateSigned() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.APISecret == "" {
		return NewConfigError("provider API secret is required for request signing")
	}
	return nil
}
