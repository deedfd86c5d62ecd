// Package config loads server configuration from an optional YAML file
// and the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// BaseURL is the Emelia API endpoint.
	BaseURL string `yaml:"base_url"`
	// APIKey pre-seeds the session so the authenticate tool is optional
	// when the host supplies the key via environment.
	APIKey string `yaml:"api_key"`
	// TimeoutSeconds bounds each outbound HTTP call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// LogLevel is a zap level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		BaseURL:        "https://api.emelia.io",
		TimeoutSeconds: 30,
		LogLevel:       "info",
	}
}

// Load builds the configuration. A missing path means file-less operation;
// a present but unreadable file is an error so a typoed --config flag does
// not silently run against defaults.
func Load(path string) (Config, error) {
	// Opportunistic .env for local development; existing vars are kept.
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("EMELIA_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("EMELIA_API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("EMELIA_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("EMELIA_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	return cfg, nil
}

// Timeout returns TimeoutSeconds as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
