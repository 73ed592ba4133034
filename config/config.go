package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds the console's runtime configuration, read from the
// environment once at startup.
type Config struct {
	// BaseURL is the root of the backend REST API. Required.
	BaseURL string
	// RequestTimeout bounds every outgoing request.
	RequestTimeout time.Duration
	// TokenFile is where the bearer token is persisted between runs.
	TokenFile string
	// DevAddr is the listen address for the bundled dev backend (-dev mode).
	DevAddr string
}

// Load reads configuration from environment variables. A missing or
// malformed API_BASE_URL is an error, not a silent fallback.
func Load() (Config, error) {
	cfg := Config{
		BaseURL:        os.Getenv("API_BASE_URL"),
		RequestTimeout: getenvDuration("REQUEST_TIMEOUT", 15*time.Second),
		TokenFile:      getenv("TOKEN_FILE", ".backoffice-token"),
		DevAddr:        getenv("DEV_ADDR", "127.0.0.1:5000"),
	}

	if cfg.BaseURL == "" {
		return cfg, fmt.Errorf("API_BASE_URL is not set")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return cfg, fmt.Errorf("API_BASE_URL %q is not a valid URL", cfg.BaseURL)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}
