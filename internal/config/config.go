package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	APIBaseURL  string // HeritageGuard REST API, including the /api prefix
	AccessToken string
	DefaultSite string // site preselected by the CLI when none is given
	HTTPTimeout time.Duration
	// Debug enables debug-level logging
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment: env,
		APIBaseURL:  getEnv("HERITAGE_API_URL", "http://localhost:8080/api"),
		AccessToken: getEnv("HERITAGE_ACCESS_TOKEN", ""),
		DefaultSite: getEnv("HERITAGE_SITE_ID", ""),
		HTTPTimeout: getDuration("HERITAGE_HTTP_TIMEOUT_SECONDS", 30*time.Second),
		Debug:       getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
