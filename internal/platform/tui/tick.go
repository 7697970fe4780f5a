// Package tui provides the Bubble Tea front end for a snake board.
// It maps keys to board actions, drives the tick loop and renders snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to advance the board by one step.
// Gen identifies the tick chain that produced it; ticks from a superseded
// chain are dropped so pausing and replaying never runs two loops at once.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a command that sends a TickMsg after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
