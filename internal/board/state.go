// Package board holds the snake board state and the pure transition
// function that produces the next state from the current one and an action.
//
// A State value is never mutated once built. Every transition returns a new
// value; slices inside a State may be shared between snapshots and must be
// treated as read-only by callers.
package board

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Block is a single snake body segment in grid-unit coordinates.
type Block struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the block shifted by v.
func (b Block) Add(v core.Vec) Block {
	b.X += v.DX
	b.Y += v.DY
	return b
}

// Snake is the ordered body plus the current heading.
// Blocks[0] is the tail and Blocks[len-1] is the head.
type Snake struct {
	Blocks    []Block        `json:"blocks"`
	Direction core.Direction `json:"direction"`
}

// Len returns the number of body segments.
func (s Snake) Len() int {
	return len(s.Blocks)
}

// Head returns the last block of the body.
func (s Snake) Head() Block {
	return s.Blocks[len(s.Blocks)-1]
}

// Tail returns the first block of the body.
func (s Snake) Tail() Block {
	return s.Blocks[0]
}

// Clone returns a copy of the snake that shares no memory with s.
func (s Snake) Clone() Snake {
	blocks := make([]Block, len(s.Blocks))
	copy(blocks, s.Blocks)
	return Snake{Blocks: blocks, Direction: s.Direction}
}

// Grid is the immutable board configuration.
// Width and Height are only used at initialization; the core never clamps
// or wraps positions against them.
type Grid struct {
	CellSize int `json:"cellSize"`
	Width    int `json:"width"`
	Height   int `json:"height"`
}

// Columns returns the number of whole cells across the board.
func (g Grid) Columns() int {
	return g.Width / g.CellSize
}

// Rows returns the number of whole cells down the board.
func (g Grid) Rows() int {
	return g.Height / g.CellSize
}

// State is the aggregate board snapshot.
// TickInterval is nil unless the board is playing; Pause clears it entirely
// so the JSON encoding omits the key.
type State struct {
	IsPlaying    bool  `json:"isPlaying"`
	TickInterval *int  `json:"tickInterval,omitempty"` // milliseconds
	TickCount    int   `json:"tickCount"`
	Snake        Snake `json:"snake"`
	Grid         Grid  `json:"grid"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Snake = s.Snake.Clone()
	if s.TickInterval != nil {
		out.TickInterval = intPtr(*s.TickInterval)
	}
	return out
}

// String returns a compact, single-line description for logs and debugging.
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "playing=%v tick=%d dir=%s len=%d", s.IsPlaying, s.TickCount, s.Snake.Direction, s.Snake.Len())
	if s.TickInterval != nil {
		fmt.Fprintf(&b, " interval=%dms", *s.TickInterval)
	}
	if s.Snake.Len() > 0 {
		head := s.Snake.Head()
		fmt.Fprintf(&b, " head=(%d,%d)", head.X, head.Y)
	}
	return b.String()
}

func intPtr(v int) *int {
	return &v
}
