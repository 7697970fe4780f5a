package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// SpeedMenuModel lets the player pick a speed preset before the board starts.
type SpeedMenuModel struct {
	cursor   int
	width    int
	height   int
	up       key.Binding
	down     key.Binding
	choose   key.Binding
	quit     key.Binding
	chosen   bool
	quitting bool
}

// NewSpeedMenuModel creates the menu with the normal preset highlighted.
func NewSpeedMenuModel(width, height int) SpeedMenuModel {
	m := SpeedMenuModel{
		width:  width,
		height: height,
		up:     key.NewBinding(key.WithKeys("up", "w", "k")),
		down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		choose: key.NewBinding(key.WithKeys("enter", " ")),
		quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
	for i, p := range config.SpeedPresets {
		if p == config.SpeedNormal {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m SpeedMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SpeedMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.down):
			if m.cursor < len(config.SpeedPresets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.choose):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the preset list.
func (m SpeedMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("S N A K E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select speed:", m.width))
	b.WriteString("\n\n")

	for i, p := range config.SpeedPresets {
		ms, _ := config.TickIntervalForPreset(p)
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-7s %4dms", cursor, p, ms), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(centerText("Enter: Select  |  Q: Quit", m.width)))
	return b.String()
}

// Selected returns the chosen preset. ok is false while the player is still
// choosing or after they quit.
func (m SpeedMenuModel) Selected() (preset config.SpeedPreset, ok bool) {
	if !m.chosen || m.quitting {
		return "", false
	}
	return config.SpeedPresets[m.cursor], true
}

// IsQuitting returns true if the player wants to quit.
func (m SpeedMenuModel) IsQuitting() bool {
	return m.quitting
}
