// snake runs a snake board in the terminal, over SSH, and replays recorded sessions.
//
// Usage:
//
//	snake play             - Play in the local terminal
//	snake serve            - Start SSH server for remote play
//	snake sessions         - List recorded sessions
//	snake replay <id>      - Rebuild a recorded session
//	snake config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.snake, ./configs)
//	--db <path>         - Session database (overrides storage.path)
//	--log-level <level> - Log level (overrides log.level)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a terminal snake board",
	Long: `Snake drives a snake around a grid in your terminal.

Every action is recorded so sessions can be replayed later.

Available commands:
  play     - Play in the local terminal
  serve    - Start SSH server for remote play
  sessions - List recorded sessions
  replay   - Rebuild or watch a recorded session
  config   - Print the effective configuration

Examples:
  snake play
  snake play --speed fast
  snake serve --ssh :2222
  snake sessions --browse
  snake replay 3f2a9c1e --watch`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session database (overrides storage.path)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the stderr logger for a command.
func newLogger(cfg config.Config, prefix string) *log.Logger {
	logger, err := logging.New(cfg.Log.Level, prefix)
	if err != nil {
		logger.Warn("using default log level", "error", err)
	}
	return logger
}

// openStore opens the session database, or returns nil when storage is disabled.
func openStore(cfg config.Config) (*storage.Store, error) {
	if cfg.Storage.Path == "" {
		return nil, nil
	}
	return storage.Open(config.ExpandHome(cfg.Storage.Path))
}

// requireStore is like openStore but fails when storage is disabled.
func requireStore(cfg config.Config) (*storage.Store, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot open session database: %w", err)
	}
	if st == nil {
		return nil, fmt.Errorf("session storage is disabled; set storage.path or pass --db")
	}
	return st, nil
}
