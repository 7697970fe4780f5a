package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/store"
)

func TestSpeedMenu(t *testing.T) {
	m := NewSpeedMenuModel(80, 24)
	if _, ok := m.Selected(); ok {
		t.Error("nothing should be selected yet")
	}
	if !strings.Contains(m.View(), "normal") {
		t.Error("View() should list the presets")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SpeedMenuModel)

	preset, ok := m.Selected()
	if !ok || preset != config.SpeedFast {
		t.Errorf("Selected() = %q, %v, expected fast", preset, ok)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := config.Default()
	initial, err := cfg.NewBoard()
	if err != nil {
		t.Fatalf("NewBoard() failed: %v", err)
	}
	ctrl := store.New(initial)

	var m tea.Model = NewSessionModel(ctrl, cfg, "alice", 100, 40)
	if !strings.Contains(m.View(), "Select speed") {
		t.Fatal("session should start with the speed menu")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("choosing a speed should start the tick loop")
	}

	s := ctrl.State()
	if !s.IsPlaying || *s.TickInterval != 200 {
		t.Errorf("board after choosing slow: %s", s)
	}
	if !strings.Contains(m.View(), "alice") {
		t.Error("board title should name the player")
	}

	m, cmd = m.Update(runeKey('q'))
	if cmd == nil || m.View() != "" {
		t.Error("q on the board should quit the session")
	}
}

func TestSessionModelQuitFromMenu(t *testing.T) {
	cfg := config.Default()
	initial, _ := cfg.NewBoard()
	var m tea.Model = NewSessionModel(store.New(initial), cfg, "bob", 80, 24)

	m, cmd := m.Update(runeKey('q'))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should quit")
	}
}
