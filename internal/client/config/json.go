package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yukta/symposium/internal/flagx"
	"github.com/yukta/symposium/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Missing keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	ServerURL           *string         `json:"server_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}

	return nil
}
