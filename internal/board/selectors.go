package board

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// IsPlaying reports whether the board is playing.
func IsPlaying(s State) bool {
	return s.IsPlaying
}

// SnakeOf returns the snake of the board.
func SnakeOf(s State) Snake {
	return s.Snake
}

// GridOf returns the grid configuration of the board.
func GridOf(s State) Grid {
	return s.Grid
}

// DirectionOf returns the current heading of the snake.
func DirectionOf(s State) core.Direction {
	return SnakeOf(s).Direction
}

// Velocity is the displacement of one cell in the current direction.
// It is the vector callers pass to Move.
func Velocity(s State) core.Vec {
	return core.Displacement(DirectionOf(s), GridOf(s).CellSize)
}

// TickEvery returns the tick interval as a duration.
// The second result is false while the board is paused.
func TickEvery(s State) (time.Duration, bool) {
	if s.TickInterval == nil {
		return 0, false
	}
	return time.Duration(*s.TickInterval) * time.Millisecond, true
}

// Cell converts a block position to whole-cell column and row indices.
func Cell(s State, b Block) (col, row int) {
	cell := GridOf(s).CellSize
	return floorDiv(b.X, cell), floorDiv(b.Y, cell)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
