package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults differ from DefaultConfig():\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadFileCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("search:\n  workers: 3\nwatch:\n  tick_rate: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Search.Workers != 3 {
		t.Errorf("expected workers 3, got %d", cfg.Search.Workers)
	}
	if cfg.Watch.TickRate != 5 {
		t.Errorf("expected tick rate 5, got %d", cfg.Watch.TickRate)
	}
	// Missing keys keep their defaults
	if cfg.Storage.DBPath != DefaultConfig().Storage.DBPath {
		t.Errorf("expected default db path, got %q", cfg.Storage.DBPath)
	}
	if !cfg.Watch.ShowTrail {
		t.Error("expected show_trail to keep its default")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("search: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{
		EnvWorkers:   "4",
		EnvStepLimit: "1000",
		EnvDBPath:    "/tmp/runs.db",
		EnvLogLevel:  "debug",
		EnvSSHAddr:   ":2222",
	}

	if err := ApplyEnv(&cfg, mapLookup(env)); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}

	if cfg.Search.Workers != 4 {
		t.Errorf("expected workers 4, got %d", cfg.Search.Workers)
	}
	if cfg.Search.StepLimit != 1000 {
		t.Errorf("expected step limit 1000, got %d", cfg.Search.StepLimit)
	}
	if cfg.Storage.DBPath != "/tmp/runs.db" {
		t.Errorf("expected db path override, got %q", cfg.Storage.DBPath)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
	if cfg.Server.Address != ":2222" {
		t.Errorf("expected ssh address :2222, got %q", cfg.Server.Address)
	}
}

func TestApplyEnvRejectsBadNumbers(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyEnv(&cfg, mapLookup(map[string]string{EnvWorkers: "many"}))
	if err == nil {
		t.Error("expected error for non-numeric workers")
	}
}

func TestReadEnvFile(t *testing.T) {
	dir := t.TempDir()

	values, err := ReadEnvFile(filepath.Join(dir, ".env"))
	if err != nil {
		t.Fatalf("missing env file should not fail: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected no values, got %v", values)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PATROL_WORKERS=2\nPATROL_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	values, err = ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile() failed: %v", err)
	}

	cfg := DefaultConfig()
	// The process environment wins over the file.
	process := mapLookup(map[string]string{EnvLogLevel: "error"})
	if err := ApplyEnv(&cfg, chainLookup(process, mapLookup(values))); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Search.Workers != 2 {
		t.Errorf("expected workers 2 from env file, got %d", cfg.Search.Workers)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected process log level to win, got %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Search.Workers = -1 }},
		{"negative step limit", func(c *Config) { c.Search.StepLimit = -5 }},
		{"zero tick rate", func(c *Config) { c.Watch.TickRate = 0 }},
		{"negative idle timeout", func(c *Config) { c.Server.IdleTimeoutMinutes = -1 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.patrol/runs.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".patrol", "runs.db"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got, _ = ExpandHome("/abs/path.db")
	if got != "/abs/path.db" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}
