// Package config provides YAML-based configuration loading for the snake
// board and the programs that host it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/board"
)

// Config is the full application configuration.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Play     PlayConfig     `yaml:"play"`
	SSH      SSHConfig      `yaml:"ssh"`
	Spectate SpectateConfig `yaml:"spectate"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// BoardConfig holds the initializer parameters.
type BoardConfig struct {
	CellSize      int `yaml:"cell_size"`
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	InitialLength int `yaml:"initial_length"`
}

// PlayConfig controls how the board is driven.
type PlayConfig struct {
	TickIntervalMS int `yaml:"tick_interval_ms"` // Carried by every Play action
	HistoryLimit   int `yaml:"history_limit"`    // Snapshots kept for undo (0 = unbounded)
}

// SSHConfig configures the wish server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Empty means ~/.snake/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// SpectateConfig configures the websocket snapshot feed.
type SpectateConfig struct {
	Address string `yaml:"address"` // Empty disables the feed
}

// StorageConfig configures session recording.
type StorageConfig struct {
	Path string `yaml:"path"` // Empty disables recording
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// NewBoard builds the initial board described by the configuration.
func (c Config) NewBoard() (board.State, error) {
	return board.Initialize(c.Board.CellSize, c.Board.Width, c.Board.Height, c.Board.InitialLength)
}

// TickInterval returns the configured tick interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Play.TickIntervalMS) * time.Millisecond
}

// Validate checks every section and joins all problems found.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.NewBoard(); err != nil {
		errs = append(errs, err)
	}
	if c.Play.TickIntervalMS <= 0 {
		errs = append(errs, fmt.Errorf("config: play.tick_interval_ms must be positive, got %d", c.Play.TickIntervalMS))
	}
	if c.Play.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("config: play.history_limit must not be negative, got %d", c.Play.HistoryLimit))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("config: ssh.idle_timeout must not be negative, got %s", c.SSH.IdleTimeout))
	}

	return errors.Join(errs...)
}
