// Package config provides configuration for the chat backend.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the backend configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	StorageBackend string // "sqlite" or "memory"
	DatabaseURL    string

	// Model settings
	GeminiAPIKey    string
	ModelName       string
	Temperature     float64
	MaxOutputTokens int
	LLMTimeout      time.Duration

	// History
	HistoryLimit int

	// Intake policy; empty means the built-in default policy.
	PolicyFile string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:        getEnvInt("HTTP_PORT", 8080),
		StorageBackend:  getEnv("STORAGE_BACKEND", "sqlite"),
		DatabaseURL:     getEnv("DATABASE_URL", "file:duocsi.db?cache=shared&mode=rwc"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_AI_API_KEY")),
		ModelName:       getEnv("MODEL_NAME", "gemini-2.5-flash"),
		Temperature:     getEnvFloat("TEMPERATURE", 0.7),
		MaxOutputTokens: getEnvInt("MAX_OUTPUT_TOKENS", 1000),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		HistoryLimit:    getEnvInt("HISTORY_LIMIT", 50),
		PolicyFile:      getEnv("POLICY_FILE", ""),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
