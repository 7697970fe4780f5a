package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the hard-coded configuration.
// It matches defaults/snake.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Board: BoardConfig{
			CellSize:      10,
			Width:         400,
			Height:        200,
			InitialLength: 3,
		},
		Play: PlayConfig{
			TickIntervalMS: 120,
			HistoryLimit:   256,
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Path: "~/.snake/sessions.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
