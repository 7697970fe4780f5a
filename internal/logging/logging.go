// Package logging builds the charmbracelet loggers shared by the snake programs.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a timestamped logger writing to stderr.
// An unknown level falls back to info and is reported as an error.
func New(level, prefix string) (*log.Logger, error) {
	return NewWithWriter(os.Stderr, level, prefix)
}

// NewWithWriter is like New but writes to w.
func NewWithWriter(w io.Writer, level, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return logger, fmt.Errorf("logging: %w", err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
