package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It matches the
// embedded defaults/t2048.yaml.
func DefaultConfig() Config {
	return Config{
		Difficulty: "normal",
		Theme:      "classic",
		FPS:        60,
		Animation: AnimationConfig{
			SlideMS:  140,
			PopMS:    160,
			PopScale: 0.28,
		},
		Input: InputConfig{
			SwipeThreshold: 3,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/best.db",
		},
		Log: LogConfig{
			File:       "~/.t2048/t2048.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Server: ServerConfig{
			SSHAddr:        ":2048",
			WSAddr:         ":8048",
			HostKey:        "~/.t2048/ssh_host_ed25519",
			IdleTimeoutMin: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
