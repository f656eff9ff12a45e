package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file. Environment variables in the
// file body are expanded before parsing.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Geyser.Endpoint == "" {
		return nil, fmt.Errorf("geyser.endpoint is required")
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Geyser.MaxReconnectAttempts == 0 {
		cfg.Geyser.MaxReconnectAttempts = 10
	}
	if cfg.Geyser.ReconnectInterval == 0 {
		cfg.Geyser.ReconnectInterval = 5 * time.Second
	}
	if cfg.Filter.Commitment == "" {
		cfg.Filter.Commitment = "confirmed"
	}

	return &cfg, nil
}
