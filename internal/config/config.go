// Package config provides YAML-based configuration loading for the
// patrol simulator, with environment overrides.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config contains all configuration for guard-patrol.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Watch   WatchConfig   `yaml:"watch"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// SearchConfig tunes the obstruction search.
type SearchConfig struct {
	Workers   int `yaml:"workers"`    // 0 = runtime.NumCPU()
	StepLimit int `yaml:"step_limit"` // 0 = 4 x W x H per walk
}

// WatchConfig defines the animated walk viewer.
type WatchConfig struct {
	TickRate       int    `yaml:"tick_rate"` // Steps per second
	ShowTrail      bool   `yaml:"show_trail"`
	ShowCandidates bool   `yaml:"show_candidates"`
	Theme          string `yaml:"theme"` // default, neon, mono
}

// StorageConfig defines where run history is kept.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	SaveRuns bool   `yaml:"save_runs"`
}

// ServerConfig defines the SSH watch server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// LogConfig defines logging behavior.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// ParsedLevel returns the charmbracelet/log level for Level.
func (l LogConfig) ParsedLevel() (log.Level, error) {
	return log.ParseLevel(l.Level)
}

// Validate checks that values are usable.
func (c Config) Validate() error {
	if c.Search.Workers < 0 {
		return fmt.Errorf("config: search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Search.StepLimit < 0 {
		return fmt.Errorf("config: search.step_limit must be >= 0, got %d", c.Search.StepLimit)
	}
	if c.Watch.TickRate <= 0 {
		return fmt.Errorf("config: watch.tick_rate must be > 0, got %d", c.Watch.TickRate)
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: server.idle_timeout_minutes must be >= 0, got %d", c.Server.IdleTimeoutMinutes)
	}
	if _, err := c.Log.ParsedLevel(); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}
