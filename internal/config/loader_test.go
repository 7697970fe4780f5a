package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/board"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded default %+v differs from Default() %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	content := `
board:
  cell_size: 2
  width: 60
  height: 30
play:
  tick_interval_ms: 80
ssh:
  idle_timeout: 5m
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Board.CellSize != 2 || cfg.Board.Width != 60 || cfg.Board.Height != 30 {
		t.Errorf("Board = %+v", cfg.Board)
	}
	// Not present in the file, so the default survives.
	if cfg.Board.InitialLength != 3 {
		t.Errorf("InitialLength = %d, expected default 3", cfg.Board.InitialLength)
	}
	if cfg.TickInterval() != 80*time.Millisecond {
		t.Errorf("TickInterval() = %s, expected 80ms", cfg.TickInterval())
	}
	if cfg.SSH.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %s, expected 5m", cfg.SSH.IdleTimeout)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Board.CellSize = 0
	cfg.Play.TickIntervalMS = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if !errors.Is(err, board.ErrInvalidConfig) {
		t.Errorf("error %v should wrap board.ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "tick_interval_ms") {
		t.Errorf("error %v should mention the tick interval", err)
	}
}

func TestNewBoard(t *testing.T) {
	cfg := Default()
	s, err := cfg.NewBoard()
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	if s.Grid.CellSize != cfg.Board.CellSize || s.Snake.Len() != cfg.Board.InitialLength {
		t.Errorf("NewBoard() = %s", s)
	}
}

func TestSpeedPresets(t *testing.T) {
	tests := []struct {
		preset   SpeedPreset
		expected int
	}{
		{SpeedSlow, 200},
		{SpeedNormal, 120},
		{SpeedFast, 70},
		{SpeedInsane, 35},
	}

	for _, tc := range tests {
		cfg := Default()
		if err := ApplySpeedPreset(&cfg, tc.preset); err != nil {
			t.Fatalf("ApplySpeedPreset(%s) failed: %v", tc.preset, err)
		}
		if cfg.Play.TickIntervalMS != tc.expected {
			t.Errorf("preset %s = %dms, expected %dms", tc.preset, cfg.Play.TickIntervalMS, tc.expected)
		}
	}

	cfg := Default()
	if err := ApplySpeedPreset(&cfg, ""); err != nil || cfg.Play.TickIntervalMS != 120 {
		t.Error("empty preset should leave the interval unchanged")
	}
	if err := ApplySpeedPreset(&cfg, "ludicrous"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x/y.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() = %q, expected unchanged", got)
	}
	if got := ExpandHome("~user/path"); got != "~user/path" {
		t.Errorf("ExpandHome() = %q, expected unchanged", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("round trip = %+v", cfg)
	}
}
