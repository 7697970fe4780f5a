package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/store"
)

// Tick interval bounds for the faster/slower keys, in milliseconds.
const (
	minTickInterval = 10
	maxTickInterval = 2000
)

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the heading shown above the board.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithRestart enables the restart key. newBoard builds the fresh board.
func WithRestart(newBoard func() (board.State, error)) Option {
	return func(m *Model) {
		m.newBoard = newBoard
	}
}

// WithAutoPlay starts the board as soon as the program starts.
func WithAutoPlay() Option {
	return func(m *Model) {
		m.autoPlay = true
	}
}

// Model is the Bubble Tea model that drives one board controller.
type Model struct {
	ctrl     *store.Controller
	newBoard func() (board.State, error)
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	interval int // ms passed to Play
	gen      int // current tick chain
	title    string
	autoPlay bool
	err      error // last rejected action
	width    int
	height   int
	quitting bool
}

// NewModel creates a model over ctrl. tickInterval is the interval in
// milliseconds used when the player starts the board.
func NewModel(ctrl *store.Controller, tickInterval int, opts ...Option) Model {
	m := Model{
		ctrl:     ctrl,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		screen:   core.NewScreen(0, 0),
		interval: tickInterval,
		title:    "S N A K E",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the tick loop if the board is already playing, or plays it
// when auto play is enabled.
func (m Model) Init() tea.Cmd {
	s := m.ctrl.State()
	if m.autoPlay && !board.IsPlaying(s) {
		var err error
		if s, err = m.ctrl.Dispatch(board.Play{TickInterval: m.interval}); err != nil {
			return nil
		}
	}
	if d, ok := board.TickEvery(s); ok {
		return tickCmd(d, m.gen)
	}
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if dir, ok := m.keys.Direction(msg); ok {
		_, m.err = m.ctrl.Dispatch(board.ChangeDirection{Direction: dir})
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		_, m.err = m.ctrl.Toggle(m.interval)
		return m.restartTicks()

	case key.Matches(msg, m.keys.Faster):
		return m.setInterval(max(m.interval*4/5, minTickInterval))

	case key.Matches(msg, m.keys.Slower):
		return m.setInterval(min(m.interval*5/4+1, maxTickInterval))

	case key.Matches(msg, m.keys.Undo):
		m.ctrl.Undo()
		m.err = nil
		return m.restartTicks()

	case key.Matches(msg, m.keys.Restart):
		if m.newBoard == nil {
			return m, nil
		}
		s, err := m.newBoard()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.ctrl.Reset(s)
		m.err = nil
		return m.restartTicks()
	}

	return m, nil
}

// setInterval changes the interval used by Play. A playing board picks it
// up immediately.
func (m Model) setInterval(ms int) (tea.Model, tea.Cmd) {
	m.interval = ms
	if !board.IsPlaying(m.ctrl.State()) {
		return m, nil
	}
	_, m.err = m.ctrl.Dispatch(board.Play{TickInterval: ms})
	return m.restartTicks()
}

// restartTicks abandons the current tick chain and starts a new one if the
// board is playing.
func (m Model) restartTicks() (tea.Model, tea.Cmd) {
	m.gen++
	d, ok := board.TickEvery(m.ctrl.State())
	if !ok {
		return m, nil
	}
	return m, tickCmd(d, m.gen)
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen {
		return m, nil
	}
	s, moved := m.ctrl.Advance()
	if !moved {
		return m, nil
	}
	d, ok := board.TickEvery(s)
	if !ok {
		return m, nil
	}
	return m, tickCmd(d, m.gen)
}

// State returns the snapshot currently shown.
func (m Model) State() board.State {
	return m.ctrl.State()
}

// View renders the board.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.ctrl.State()
	DrawBoard(m.screen, s)

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusLine(s))
	if !board.IsPlaying(s) {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  ·  next %dms", m.interval)))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts a Bubble Tea program for model and blocks until it exits.
func Run(model tea.Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(model, opts...)
	_, err := p.Run()
	return err
}
