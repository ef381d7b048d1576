// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// DataPath is probed first, FallbackDataPath second. Neither existing
	// is fatal to startup.
	DataPath         string `envconfig:"DATA_PATH" default:"2024_Accidentalidad.csv"`
	FallbackDataPath string `envconfig:"FALLBACK_DATA_PATH" default:"data/2024_Accidentalidad.csv"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// DatasetCacheSize bounds how many prepared tables stay memoized. One
	// is enough for a single yearly file; a larger value keeps older
	// snapshots warm across file replacements.
	DatasetCacheSize int `envconfig:"DATASET_CACHE_SIZE" default:"4"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.DataPath == "" {
		return nil, fmt.Errorf("DATA_PATH is required")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.DatasetCacheSize <= 0 {
		return nil, fmt.Errorf("DATASET_CACHE_SIZE must be positive")
	}

	return &cfg, nil
}
