// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider kinds selectable through AI_PROVIDER.
const (
	ProviderBearer = "bearer"
	ProviderSigned = "signed"
)

type Config struct {
	ServerPort   string
	DatabasePath string
	UploadDir    string
	Environment  string
	LogLevel     string

	// Which authentication variant serves text completions.
	ProviderKind string

	// Bearer-token variant (OpenAI-compatible endpoint).
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	VisionModel string

	// Signed-query-string variant.
	SignedAPIKey    string
	SignedAPISecret string
	SignedBaseURL   string
	SignedModel     string

	ProviderTimeout time.Duration
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabasePath: getEnv("DB_PATH", "diagnosis.db"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		Environment:  env,
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),

		ProviderKind: strings.ToLower(getEnv("AI_PROVIDER", ProviderBearer)),

		LLMAPIKey:   getEnv("LLM_API_KEY", ""),
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
		LLMModel:    getEnv("LLM_MODEL", "glm-4"),
		VisionModel: getEnv("LLM_VISION_MODEL", "glm-4v"),

		SignedAPIKey:    getEnv("SIGNED_API_KEY", ""),
		SignedAPISecret: getEnv("SIGNED_API_SECRET", ""),
		SignedBaseURL:   getEnv("SIGNED_BASE_URL", ""),
		SignedModel:     getEnv("SIGNED_MODEL", "general"),

		ProviderTimeout: time.Duration(getEnvAsInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
	}

	if strings.ToLower(env) == "production" {
		var missing []string
		switch cfg.ProviderKind {
		case ProviderSigned:
			if cfg.SignedAPIKey == "" {
				missing = append(missing, "SIGNED_API_KEY")
			}
			if cfg.SignedAPISecret == "" {
				missing = append(missing, "SIGNED_API_SECRET")
			}
			if cfg.SignedBaseURL == "" {
				missing = append(missing, "SIGNED_BASE_URL")
			}
		default:
			if cfg.LLMAPIKey == "" {
				missing = append(missing, "LLM_API_KEY")
			}
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
