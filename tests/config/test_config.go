package config

import (
	"os"
	"time"
)

// TestConfig holds the settings for E2E test runs
type TestConfig struct {
	BaseURL            string
	AdminToken         string
	HealthCheckTimeout time.Duration
	APICallTimeout     time.Duration
}

// LoadTestConfig reads the E2E configuration from the environment
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		BaseURL:            getEnv("TEST_BASE_URL", "http://localhost:8080/v1"),
		AdminToken:         os.Getenv("TEST_ADMIN_TOKEN"),
		HealthCheckTimeout: getDuration("TEST_HEALTH_TIMEOUT", 10*time.Second),
		APICallTimeout:     getDuration("TEST_API_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
