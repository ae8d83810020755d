package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "HERITAGE_API_URL", "HERITAGE_HTTP_TIMEOUT_SECONDS", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default to true outside prod")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("HERITAGE_API_URL", "https://heritage.example.org/api")
	t.Setenv("HERITAGE_SITE_ID", "site-7")
	t.Setenv("HERITAGE_HTTP_TIMEOUT_SECONDS", "5")

	cfg := Load()
	if cfg.APIBaseURL != "https://heritage.example.org/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DefaultSite != "site-7" {
		t.Errorf("DefaultSite = %q", cfg.DefaultSite)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.Debug {
		t.Error("Debug should default to false in prod")
	}
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	for _, value := range []string{"abc", "-3", "0"} {
		t.Setenv("HERITAGE_HTTP_TIMEOUT_SECONDS", value)
		if got := Load().HTTPTimeout; got != 30*time.Second {
			t.Errorf("timeout %q: HTTPTimeout = %v, want default", value, got)
		}
	}
}
