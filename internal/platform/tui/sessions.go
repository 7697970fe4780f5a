package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxSessions is the number of sessions loaded into the browser.
const maxSessions = 200

// SessionSource lists recorded sessions and rebuilds their frames.
// *storage.Store implements it.
type SessionSource interface {
	Sessions(limit int) ([]storage.SessionInfo, error)
	Frames(id string) ([]board.State, error)
}

// SessionsKeyMap defines the key bindings for the session browser.
type SessionsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SessionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SessionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Back, k.Quit},
	}
}

// DefaultSessionsKeyMap returns default key bindings.
func DefaultSessionsKeyMap() SessionsKeyMap {
	return SessionsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SessionsModel lists recorded sessions and opens the replay viewer for the
// selected one.
type SessionsModel struct {
	source   SessionSource
	sessions []storage.SessionInfo
	table    table.Model
	help     help.Model
	keys     SessionsKeyMap
	replay   *ReplayModel
	err      error
	width    int
	height   int
	quitting bool
}

// NewSessionsModel creates a session browser over source.
func NewSessionsModel(source SessionSource, width, height int) SessionsModel {
	m := SessionsModel{
		source: source,
		help:   help.New(),
		keys:   DefaultSessionsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadSessions()
	return m
}

func (m *SessionsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Label", Width: 16},
		{Title: "Board", Width: 14},
		{Title: "Actions", Width: 8},
		{Title: "Recorded", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-6, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *SessionsModel) loadSessions() {
	m.sessions, m.err = m.source.Sessions(maxSessions)

	rows := make([]table.Row, len(m.sessions))
	for i, info := range m.sessions {
		p := info.Params
		rows[i] = table.Row{
			shortID(info.ID),
			info.Label,
			fmt.Sprintf("%dx%d/%d", p.Width, p.Height, p.CellSize),
			fmt.Sprintf("%d", info.ActionCount),
			info.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser.
func (m SessionsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SessionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.replay != nil {
		return m.updateReplay(msg)
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			return m.open(m.table.Cursor())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(m.height-6, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// open loads the frames of session i and switches to the replay viewer.
func (m SessionsModel) open(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.sessions) {
		return m, nil
	}
	info := m.sessions[i]
	frames, err := m.source.Frames(info.ID)
	if err != nil {
		m.err = err
		return m, nil
	}
	title := fmt.Sprintf("REPLAY %s", shortID(info.ID))
	if info.Label != "" {
		title += " · " + info.Label
	}
	r := NewReplayModel(title, frames)
	r.help.Width = m.width
	m.replay = &r
	m.err = nil
	return m, r.Init()
}

func (m SessionsModel) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Back) {
		m.replay = nil
		return m, nil
	}

	next, cmd := m.replay.Update(msg)
	r, ok := next.(ReplayModel)
	if !ok {
		return m, cmd
	}
	if r.quitting {
		m.quitting = true
	}
	m.replay = &r
	return m, cmd
}

// View renders the browser or the open replay.
func (m SessionsModel) View() string {
	if m.quitting {
		return ""
	}
	if m.replay != nil {
		return m.replay.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("RECORDED SESSIONS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.sessions) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4).
			Render("No sessions recorded yet.\nRun `snake play` to record one.")
		b.WriteString(tableStyle.Render(empty))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
