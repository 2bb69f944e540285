package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	Environment  string
	BackendURL   string
	APIKey       string
	PollInterval int // seconds
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		BackendURL:   getEnv("BACKEND_URL", "http://vapt-backend:8000"),
		APIKey:       getEnv("API_KEY", ""),
		PollInterval: getEnvInt("POLL_INTERVAL", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
