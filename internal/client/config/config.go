package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the Yukta CLI.
type Config struct {
	ServerURL           string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
}

// LoadConfig builds a Config from defaults, an optional JSON file and flags
// found in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("request timeout must be positive")
	}
	if cfg.OnlineCheckInterval <= 0 {
		return nil, fmt.Errorf("online check interval must be positive")
	}

	return cfg, nil
}
