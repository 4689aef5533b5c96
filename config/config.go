// Package config handles runtime settings: defaults overlaid by an
// optional JSON file. There are no flags and no environment lookups;
// the host application decides where the file lives.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/propdiary/propdiary/internal/timex"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: SQLite path, or ":memory:" for an ephemeral store.
//   - RetentionDays: recycle-bin grace period in days.
//   - SweepInterval: how often the background sweeper re-checks the bin.
type Config struct {
	DatabasePath  string
	RetentionDays int
	SweepInterval time.Duration
}

// LoadDefaults populates Config with its built-in defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "propdiary.db"
	c.RetentionDays = 30
	c.SweepInterval = time.Hour
}

// Load builds a Config by applying defaults and then overlaying values
// from the JSON file at path, if path is non-empty. Later sources win.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	if err := parseJSON(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It
// relies on timex.Duration so intervals can be written either as
// strings like "1h" or as integer nanoseconds.
type jsonConfig struct {
	DatabasePath  *string         `json:"database_path"`
	RetentionDays *int            `json:"retention_days"`
	SweepInterval *timex.Duration `json:"sweep_interval"`
}

func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RetentionDays != nil {
		cfg.RetentionDays = *jc.RetentionDays
	}
	if jc.SweepInterval != nil {
		cfg.SweepInterval = jc.SweepInterval.Duration
	}
	return nil
}
