package config

import (
	_ "embed"
)

//go:embed defaults/patrol.yaml
var defaultYAML []byte

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Workers:   0,
			StepLimit: 0,
		},
		Watch: WatchConfig{
			TickRate:       20,
			ShowTrail:      true,
			ShowCandidates: false,
			Theme:          "default",
		},
		Storage: StorageConfig{
			DBPath:   "~/.patrol/runs.db",
			SaveRuns: true,
		},
		Server: ServerConfig{
			Address:            ":23235",
			HostKey:            "",
			IdleTimeoutMinutes: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
