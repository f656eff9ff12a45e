package config

import (
	"time"

	"github.com/phamduc/solwatch/internal/sink/postgres"
	redissink "github.com/phamduc/solwatch/internal/sink/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig     `yaml:"server"`
	Geyser   GeyserConfig     `yaml:"geyser"`
	Filter   FilterConfig     `yaml:"filter"`
	Redis    redissink.Config `yaml:"redis"`
	Database postgres.Config  `yaml:"database"`
	Logging  LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// GeyserConfig holds settings for the Geyser subscription endpoint.
type GeyserConfig struct {
	Endpoint             string        `yaml:"endpoint"`
	XToken               string        `yaml:"x_token"`
	MaxReconnectAttempts uint32        `yaml:"max_reconnect_attempts"`
	ReconnectInterval    time.Duration `yaml:"reconnect_interval"`
}

// FilterConfig describes which transactions to subscribe to. It is mapped
// verbatim into the subscribe request and reused across reconnects.
type FilterConfig struct {
	AccountInclude  []string `yaml:"account_include"`
	AccountExclude  []string `yaml:"account_exclude"`
	AccountRequired []string `yaml:"account_required"`
	IncludeVotes    bool     `yaml:"include_votes"`
	IncludeFailed   bool     `yaml:"include_failed"`
	Commitment      string   `yaml:"commitment"` // processed, confirmed, finalized
}
