package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type fakeSource struct {
	sessions []storage.SessionInfo
	frames   map[string][]board.State
}

func (f *fakeSource) Sessions(limit int) ([]storage.SessionInfo, error) {
	if len(f.sessions) > limit {
		return f.sessions[:limit], nil
	}
	return f.sessions, nil
}

func (f *fakeSource) Frames(id string) ([]board.State, error) {
	frames, ok := f.frames[id]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return frames, nil
}

func updateSessions(t *testing.T, m SessionsModel, msg tea.Msg) (SessionsModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionsModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionsModel", next)
	}
	return sm, cmd
}

func TestSessionsOpenAndBack(t *testing.T) {
	src := &fakeSource{
		sessions: []storage.SessionInfo{
			{ID: "0123456789abcdef", Label: "alice", ActionCount: 3, CreatedAt: time.Now()},
			{ID: "missing", Label: "bob"},
		},
		frames: map[string][]board.State{
			"0123456789abcdef": testFrames(),
		},
	}
	m := NewSessionsModel(src, 100, 30)

	view := m.View()
	if !strings.Contains(view, "01234567") || !strings.Contains(view, "alice") {
		t.Errorf("View() should list the sessions, got %q", view)
	}

	m, _ = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.replay == nil {
		t.Fatal("enter should open the replay")
	}
	if !strings.Contains(m.View(), "REPLAY 01234567 · alice") {
		t.Errorf("replay view = %q", m.View())
	}

	m, _ = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.replay.cursor != 1 {
		t.Errorf("replay cursor = %d, expected 1", m.replay.cursor)
	}

	m, _ = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.replay != nil {
		t.Fatal("esc should return to the list")
	}

	m, _ = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.replay != nil {
		t.Error("missing session should not open")
	}
	if !errors.Is(m.err, storage.ErrSessionNotFound) {
		t.Errorf("err = %v, expected ErrSessionNotFound", m.err)
	}
}

func TestSessionsEmpty(t *testing.T) {
	m := NewSessionsModel(&fakeSource{}, 80, 24)
	if !strings.Contains(m.View(), "No sessions recorded yet") {
		t.Error("empty browser should say so")
	}

	m, cmd := updateSessions(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.replay != nil || cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}

	_, cmd = updateSessions(t, m, runeKey('q'))
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789"); got != "01234567" {
		t.Errorf("shortID() = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID() = %q", got)
	}
}
