// Package config provides configuration management for actions-insight.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"

	defaultHTTPAddr    = ":8080"
	defaultEventsTopic = "actions-insight.analysis"
)

// Config holds the application configuration.
type Config struct {
	GitHub  GitHubConfig  `toml:"github"`
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Events  EventsConfig  `toml:"events"`
}

// GitHubConfig holds the data source settings.
type GitHubConfig struct {
	// Token is sent as a bearer token. Empty means unauthenticated requests.
	Token string `toml:"token"`
	// APIURL overrides https://api.github.com, e.g. for GitHub Enterprise.
	APIURL string `toml:"api_url"`
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	Transport string `toml:"transport"` // stdio or http
	HTTPAddr  string `toml:"http_addr"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// EventsConfig enables publishing analysis events to Redpanda.
type EventsConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// Enabled reports whether any broker is configured.
func (e EventsConfig) Enabled() bool {
	return len(e.Brokers) > 0
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Transport: TransportStdio, HTTPAddr: defaultHTTPAddr},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Events:  EventsConfig{Topic: defaultEventsTopic},
	}
}

// Load reads configuration with priority: environment > TOML file > defaults.
// A missing file at path is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() (*Config, error) {
	return Load("")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("GITHUB_API_URL"); v != "" {
		cfg.GitHub.APIURL = v
	}
	if v := os.Getenv("ACTIONS_INSIGHT_TRANSPORT"); v != "" {
		cfg.Server.Transport = v
	}
	if v := os.Getenv("ACTIONS_INSIGHT_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("ACTIONS_INSIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ACTIONS_INSIGHT_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("REDPANDA_BROKERS"); v != "" {
		cfg.Events.Brokers = splitList(v)
	}
	if v := os.Getenv("ACTIONS_INSIGHT_EVENTS_TOPIC"); v != "" {
		cfg.Events.Topic = v
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Server.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("invalid transport %q: want %s or %s", c.Server.Transport, TransportStdio, TransportHTTP)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logging.Format)
	}

	if c.Events.Enabled() && c.Events.Topic == "" {
		return fmt.Errorf("events topic is required when brokers are configured")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
