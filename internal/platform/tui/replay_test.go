package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/board"
)

func testFrames() []board.State {
	s := board.MustInitialize(10, 100, 100, 3)
	frames := []board.State{s}
	for _, a := range []board.Action{board.Play{TickInterval: 30}, board.Tick{}, board.Tick{}} {
		s = board.Reduce(s, a)
		frames = append(frames, s)
	}
	return frames
}

func updateReplay(t *testing.T, m ReplayModel, msg tea.Msg) (ReplayModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(ReplayModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected ReplayModel", next)
	}
	return rm, cmd
}

func TestReplaySeek(t *testing.T) {
	m := NewReplayModel("replay", testFrames())

	m, _ = updateReplay(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected to stay at 0", m.cursor)
	}

	m, _ = updateReplay(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if !m.Frame().IsPlaying {
		t.Error("frame 1 should be playing")
	}

	m, _ = updateReplay(t, m, runeKey('G'))
	if m.cursor != 3 || m.Frame().TickCount != 2 {
		t.Errorf("cursor = %d, frame = %s", m.cursor, m.Frame())
	}

	m, _ = updateReplay(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.cursor != 3 {
		t.Errorf("cursor = %d, expected to stay at the last frame", m.cursor)
	}

	m, _ = updateReplay(t, m, runeKey('g'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}
}

func TestReplayAutoPlay(t *testing.T) {
	m := NewReplayModel("replay", testFrames())

	m, cmd := updateReplay(t, m, space())
	if cmd == nil || !m.playing {
		t.Fatal("space should start auto play")
	}

	for i := 1; i <= 3; i++ {
		m, cmd = updateReplay(t, m, TickMsg{Gen: m.gen})
		if m.cursor != i {
			t.Fatalf("cursor = %d, expected %d", m.cursor, i)
		}
		if i < 3 && cmd == nil {
			t.Fatalf("auto play should continue at frame %d", i)
		}
	}

	m, cmd = updateReplay(t, m, TickMsg{Gen: m.gen})
	if cmd != nil || m.playing {
		t.Error("auto play should stop at the last frame")
	}
}

func TestReplaySeekStopsAutoPlay(t *testing.T) {
	m := NewReplayModel("replay", testFrames())
	m, _ = updateReplay(t, m, space())
	gen := m.gen

	m, _ = updateReplay(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.playing {
		t.Error("seeking should stop auto play")
	}
	m, _ = updateReplay(t, m, TickMsg{Gen: gen})
	if m.cursor != 1 {
		t.Errorf("stale tick moved the cursor to %d", m.cursor)
	}
}

func TestReplayView(t *testing.T) {
	m := NewReplayModel("REPLAY abc", testFrames())
	view := m.View()
	if !strings.Contains(view, "REPLAY abc") || !strings.Contains(view, "frame 0/3") {
		t.Errorf("View() = %q", view)
	}

	empty := NewReplayModel("empty", nil)
	if !strings.Contains(empty.View(), "No frames") {
		t.Error("empty replay should say so")
	}
	if empty.Frame().Snake.Len() != 0 {
		t.Error("Frame() of an empty replay should be the zero state")
	}
}
