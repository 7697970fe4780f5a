package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// cellWidth is the number of terminal columns used for one board cell.
// Terminal characters are about twice as tall as they are wide.
const cellWidth = 2

const (
	bodyRune = '▓'
	headRune = '█'
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
	playingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// DrawBoard draws the grid border and the snake of s into scr, resizing scr
// to fit the board. Blocks outside the grid are not drawn.
func DrawBoard(scr *core.Screen, s board.State) {
	grid := board.GridOf(s)
	if grid.CellSize <= 0 {
		scr.Resize(0, 0)
		return
	}
	cols, rows := grid.Columns(), grid.Rows()
	scr.Resize(cols*cellWidth+2, rows+2)
	scr.Clear()
	scr.DrawBox(core.NewRect(0, 0, scr.Width(), scr.Height()), core.ColorGray)

	inside := core.NewRect(0, 0, cols, rows)
	snake := board.SnakeOf(s)
	for i, b := range snake.Blocks {
		col, row := board.Cell(s, b)
		if !inside.Contains(col, row) {
			continue
		}
		r, c := bodyRune, core.ColorGreen
		if i == snake.Len()-1 {
			r, c = headRune, core.ColorBrightGreen
		}
		for dx := 0; dx < cellWidth; dx++ {
			scr.Set(1+col*cellWidth+dx, 1+row, r, c)
		}
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// statusLine summarizes a snapshot in one line.
func statusLine(s board.State) string {
	mode := pausedStyle.Render("PAUSED")
	if board.IsPlaying(s) {
		mode = playingStyle.Render("PLAYING")
	}

	parts := []string{
		mode,
		fmt.Sprintf("tick %d", s.TickCount),
		fmt.Sprintf("heading %s", board.DirectionOf(s)),
		fmt.Sprintf("length %d", board.SnakeOf(s).Len()),
	}
	if d, ok := board.TickEvery(s); ok {
		parts = append(parts, fmt.Sprintf("every %s", d))
	}
	if snake := board.SnakeOf(s); snake.Len() > 0 {
		col, row := board.Cell(s, snake.Head())
		parts = append(parts, fmt.Sprintf("head %d,%d", col, row))
	}
	return strings.Join(parts, statusStyle.Render("  ·  "))
}

// centerText centers text horizontally within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
