package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvWorkers   = "PATROL_WORKERS"
	EnvStepLimit = "PATROL_STEP_LIMIT"
	EnvDBPath    = "PATROL_DB"
	EnvLogLevel  = "PATROL_LOG_LEVEL"
	EnvSSHAddr   = "PATROL_SSH_ADDR"
)

// Load loads the configuration and applies environment overrides.
// Search order: customPath -> ~/.patrol/config.yaml -> ./configs/patrol.yaml -> embedded default.
// Variables from ./.env are used when not already set in the environment.
func Load(customPath string) (Config, error) {
	cfg, err := LoadFile(customPath)
	if err != nil {
		return cfg, err
	}

	dotenv, err := ReadEnvFile(".env")
	if err != nil {
		return cfg, err
	}

	if err := ApplyEnv(&cfg, chainLookup(os.LookupEnv, mapLookup(dotenv))); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile loads the configuration file without environment overrides.
// Keys missing from the file keep their default values.
func LoadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/patrol.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ReadEnvFile reads KEY=VALUE pairs from a dotenv file.
// A missing file yields an empty map.
func ReadEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides cfg with the PATROL_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvWorkers, err)
		}
		cfg.Search.Workers = n
	}
	if v, ok := lookup(EnvStepLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer: %w", EnvStepLimit, err)
		}
		cfg.Search.StepLimit = n
	}
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		cfg.Storage.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvSSHAddr); ok && v != "" {
		cfg.Server.Address = v
	}
	return nil
}

// mapLookup adapts a map to a LookupFunc.
func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// chainLookup returns the first hit among lookups.
func chainLookup(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".patrol", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
