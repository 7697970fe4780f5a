package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// defaultReplayStep is the auto play delay for frames recorded while paused.
const defaultReplayStep = 100 * time.Millisecond

// ReplayKeyMap defines the key bindings of the replay viewer.
type ReplayKeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
	Play  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Play, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Play, k.Help, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "forward"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "auto play"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayModel steps through the frames of a recorded session.
type ReplayModel struct {
	title    string
	frames   []board.State
	cursor   int
	playing  bool
	gen      int
	keys     ReplayKeyMap
	help     help.Model
	screen   *core.Screen
	quitting bool
}

// NewReplayModel creates a viewer over frames, starting at the first one.
func NewReplayModel(title string, frames []board.State) ReplayModel {
	return ReplayModel{
		title:  title,
		frames: frames,
		keys:   DefaultReplayKeyMap(),
		help:   help.New(),
		screen: core.NewScreen(0, 0),
	}
}

// Init initializes the viewer.
func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || !m.playing {
			return m, nil
		}
		if m.cursor >= len(m.frames)-1 {
			m.playing = false
			return m, nil
		}
		m.cursor++
		return m, tickCmd(m.step(), m.gen)
	}
	return m, nil
}

func (m ReplayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Prev):
		m.seek(m.cursor - 1)
	case key.Matches(msg, m.keys.Next):
		m.seek(m.cursor + 1)
	case key.Matches(msg, m.keys.First):
		m.seek(0)
	case key.Matches(msg, m.keys.Last):
		m.seek(len(m.frames) - 1)
	case key.Matches(msg, m.keys.Play):
		m.playing = !m.playing
		m.gen++
		if m.playing {
			return m, tickCmd(m.step(), m.gen)
		}
	}
	return m, nil
}

// seek moves to frame i, clamped to the recording, and stops auto play.
func (m *ReplayModel) seek(i int) {
	m.cursor = max(0, min(i, len(m.frames)-1))
	m.playing = false
	m.gen++
}

// step is the delay before the next frame: the recorded tick interval when
// the board was playing.
func (m ReplayModel) step() time.Duration {
	if d, ok := board.TickEvery(m.Frame()); ok {
		return d
	}
	return defaultReplayStep
}

// Frame returns the frame currently shown.
func (m ReplayModel) Frame() board.State {
	if len(m.frames) == 0 {
		return board.State{}
	}
	return m.frames[m.cursor]
}

// View renders the current frame.
func (m ReplayModel) View() string {
	if m.quitting {
		return ""
	}
	if len(m.frames) == 0 {
		return "No frames recorded.\n"
	}

	s := m.Frame()
	DrawBoard(m.screen, s)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString(statusStyle.Render(fmt.Sprintf("  frame %d/%d", m.cursor, len(m.frames)-1)))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusLine(s))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}
