// Package config holds the flat agvlog configuration: controller
// endpoint, log directory, and the timing knobs of the polling loop.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FileName is the config file looked up in the working directory.
const FileName = "agvlog.json"

// Config represents the flat agvlog configuration. Durations are kept
// as plain second counts so the JSON stays hand-editable.
type Config struct {
	ServerURL          string `json:"server_url"`
	APIKey             string `json:"api_key,omitempty"`
	VehicleName        string `json:"vehicle_name"`
	LogDir             string `json:"log_dir"`
	PollIntervalSecs   int    `json:"poll_interval_secs"`
	RetentionDays      int    `json:"retention_days"`
	RequestTimeoutSecs int    `json:"request_timeout_secs"`
	QueryWindow        int    `json:"query_window"`
	ViewerSession      string `json:"viewer_session"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServerURL:          "http://localhost:8081",
		VehicleName:        "AGV",
		LogDir:             "Log",
		PollIntervalSecs:   3,
		RetentionDays:      30,
		RequestTimeoutSecs: 5,
		QueryWindow:        120,
		ViewerSession:      "agvlog-watch",
	}
}

// Load reads agvlog.json from the given directory, overlaying the
// defaults. A missing file is not an error: the defaults plus any
// AGVLOG_* environment overrides apply.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("server_url must not be empty")
	}
	if cfg.PollIntervalSecs <= 0 {
		return nil, fmt.Errorf("poll_interval_secs must be positive, got %d", cfg.PollIntervalSecs)
	}
	if cfg.RetentionDays <= 0 {
		return nil, fmt.Errorf("retention_days must be positive, got %d", cfg.RetentionDays)
	}
	if cfg.QueryWindow <= 0 {
		return nil, fmt.Errorf("query_window must be positive, got %d", cfg.QueryWindow)
	}

	return cfg, nil
}

// Save writes the config as agvlog.json to the given directory.
func Save(dir string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnv overlays AGVLOG_* environment variables onto the config.
// Unset variables leave the current value alone; unparseable numeric
// values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("AGVLOG_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("AGVLOG_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("AGVLOG_VEHICLE_NAME"); v != "" {
		cfg.VehicleName = v
	}
	if v := os.Getenv("AGVLOG_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("AGVLOG_POLL_INTERVAL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PollIntervalSecs = n
		}
	}
	if v := os.Getenv("AGVLOG_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetentionDays = n
		}
	}
}

// PollInterval returns the polling period as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// RequestTimeout returns the per-request controller timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}
