package tui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/store"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

// update feeds msg to m and returns the updated model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func newTestModel(t *testing.T, opts ...Option) (Model, *store.Controller) {
	t.Helper()
	ctrl := store.New(board.MustInitialize(10, 100, 100, 3))
	return NewModel(ctrl, 50, opts...), ctrl
}

func TestToggleStartsAndStopsTicks(t *testing.T) {
	m, ctrl := newTestModel(t)

	if cmd := m.Init(); cmd != nil {
		t.Error("Init() on a paused board should not schedule ticks")
	}

	m, cmd := update(t, m, space())
	if cmd == nil {
		t.Fatal("starting the board should schedule a tick")
	}
	s := ctrl.State()
	if !s.IsPlaying || *s.TickInterval != 50 {
		t.Fatalf("after toggle: %s", s)
	}

	m, _ = update(t, m, TickMsg{Gen: m.gen})
	if got := ctrl.State().TickCount; got != 1 {
		t.Errorf("TickCount = %d, expected 1", got)
	}
	if head := ctrl.State().Snake.Head(); head != (board.Block{X: 40, Y: 10}) {
		t.Errorf("Head() = %+v, expected (40,10)", head)
	}

	oldGen := m.gen
	m, cmd = update(t, m, runeKey('p'))
	if cmd != nil {
		t.Error("pausing should not schedule ticks")
	}
	if ctrl.State().IsPlaying {
		t.Error("expected paused after second toggle")
	}

	// A tick from the abandoned chain is dropped.
	_, cmd = update(t, m, TickMsg{Gen: oldGen})
	if cmd != nil || ctrl.State().TickCount != 1 {
		t.Error("stale tick should be ignored")
	}
}

func TestStaleTickWhilePlaying(t *testing.T) {
	m, ctrl := newTestModel(t, WithAutoPlay())
	if cmd := m.Init(); cmd == nil {
		t.Fatal("auto play should schedule a tick")
	}
	if !ctrl.State().IsPlaying {
		t.Fatal("auto play should play the board")
	}

	// Changing speed while playing starts a new chain.
	m, cmd := update(t, m, runeKey('+'))
	if cmd == nil {
		t.Fatal("changing speed while playing should schedule a tick")
	}
	if got := *ctrl.State().TickInterval; got != 40 {
		t.Errorf("TickInterval = %d, expected 40", got)
	}

	_, cmd = update(t, m, TickMsg{Gen: 0})
	if cmd != nil || ctrl.State().TickCount != 0 {
		t.Error("tick from the first chain should be ignored")
	}
}

func TestDirectionKeys(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected core.Direction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.DirUp},
		{tea.KeyMsg{Type: tea.KeyDown}, core.DirDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.DirLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, core.DirRight},
		{runeKey('w'), core.DirUp},
		{runeKey('a'), core.DirLeft},
		{runeKey('s'), core.DirDown},
		{runeKey('d'), core.DirRight},
	}

	for _, tc := range tests {
		m, ctrl := newTestModel(t)
		update(t, m, tc.msg)
		if got := board.DirectionOf(ctrl.State()); got != tc.expected {
			t.Errorf("key %q: direction = %s, expected %s", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestUndoKey(t *testing.T) {
	m, ctrl := newTestModel(t)
	initial := ctrl.State()

	m, _ = update(t, m, runeKey('s'))
	update(t, m, runeKey('u'))

	if !reflect.DeepEqual(ctrl.State(), initial) {
		t.Errorf("after undo: %s, expected %s", ctrl.State(), initial)
	}
}

func TestRestartKey(t *testing.T) {
	fresh := board.MustInitialize(5, 50, 50, 2)
	m, ctrl := newTestModel(t, WithRestart(func() (board.State, error) {
		return fresh, nil
	}))

	m, _ = update(t, m, space())
	_, cmd := update(t, m, runeKey('r'))

	if cmd != nil {
		t.Error("restarted board is paused and should not tick")
	}
	if !reflect.DeepEqual(ctrl.State(), fresh) {
		t.Errorf("after restart: %s, expected %s", ctrl.State(), fresh)
	}
}

func TestRestartError(t *testing.T) {
	m, ctrl := newTestModel(t, WithRestart(func() (board.State, error) {
		return board.State{}, errors.New("no board")
	}))
	before := ctrl.State()

	m, _ = update(t, m, runeKey('r'))
	if !reflect.DeepEqual(ctrl.State(), before) {
		t.Error("failed restart should keep the board")
	}
	if !strings.Contains(m.View(), "no board") {
		t.Error("View() should show the restart error")
	}
}

func TestSpeedBounds(t *testing.T) {
	ctrl := store.New(board.MustInitialize(10, 100, 100, 3))
	m := NewModel(ctrl, minTickInterval)
	m, _ = update(t, m, runeKey('+'))
	if m.interval != minTickInterval {
		t.Errorf("interval = %d, expected floor %d", m.interval, minTickInterval)
	}

	m = NewModel(ctrl, maxTickInterval)
	m, _ = update(t, m, runeKey('-'))
	if m.interval != maxTickInterval {
		t.Errorf("interval = %d, expected ceiling %d", m.interval, maxTickInterval)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestViewShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, WithTitle("TEST BOARD"))
	view := m.View()

	for _, want := range []string{"TEST BOARD", "PAUSED", "tick 0", "heading RIGHT", "length 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q", want)
		}
	}

	m, _ = update(t, m, space())
	if !strings.Contains(m.View(), "PLAYING") {
		t.Error("View() should show PLAYING after toggle")
	}
}
