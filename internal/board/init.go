package board

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

var (
	// ErrInvalidConfig is wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("board: invalid configuration")

	// ErrInvalidArgument reports a malformed action argument such as a
	// direction outside the closed enum or a non-positive tick interval.
	ErrInvalidArgument = errors.New("board: invalid argument")
)

// ConfigError describes an initializer parameter outside its allowed range.
type ConfigError struct {
	Field string
	Value int
	Min   int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("board: %s must be >= %d, got %d", e.Field, e.Min, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// InitialDirection is the heading of every freshly initialized snake.
const InitialDirection = core.DirRight

// Initialize builds the starting board.
// The tail sits at (cellSize, cellSize) and the remaining initialLength-1
// segments are laid out one cell apart toward the head along InitialDirection.
// The board starts paused with a zero tick count.
func Initialize(cellSize, width, height, initialLength int) (State, error) {
	checks := []ConfigError{
		{Field: "cell size", Value: cellSize, Min: 1},
		{Field: "width", Value: width, Min: 1},
		{Field: "height", Value: height, Min: 1},
		{Field: "initial length", Value: initialLength, Min: 1},
	}
	for _, c := range checks {
		if c.Value < c.Min {
			return State{}, &c
		}
	}

	tail := Block{X: cellSize, Y: cellSize}
	step := core.Displacement(InitialDirection, cellSize)

	blocks := make([]Block, initialLength)
	for i := range blocks {
		blocks[i] = Block{
			X: tail.X + step.DX*i,
			Y: tail.Y + step.DY*i,
		}
	}

	return State{
		Snake: Snake{Blocks: blocks, Direction: InitialDirection},
		Grid:  Grid{CellSize: cellSize, Width: width, Height: height},
	}, nil
}

// MustInitialize is like Initialize but panics on invalid parameters.
// Intended for tests and hard-coded defaults.
func MustInitialize(cellSize, width, height, initialLength int) State {
	s, err := Initialize(cellSize, width, height, initialLength)
	if err != nil {
		panic(err)
	}
	return s
}
