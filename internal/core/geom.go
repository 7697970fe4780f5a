// Package core provides fundamental types and utilities for the snake board.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// board logic pure and testable.
package core

import "fmt"

// Direction is the heading of the snake on the grid.
// The set of values is closed: there is no diagonal or stationary direction.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists every valid direction in declaration order.
var Directions = []Direction{DirUp, DirRight, DirDown, DirLeft}

// Valid reports whether d is one of the four declared directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// String returns the wire name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "UP"
	case DirRight:
		return "RIGHT"
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a wire name ("UP", "RIGHT", "DOWN", "LEFT") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "UP":
		return DirUp, nil
	case "RIGHT":
		return DirRight, nil
	case "DOWN":
		return DirDown, nil
	case "LEFT":
		return DirLeft, nil
	}
	return 0, fmt.Errorf("core: unknown direction %q", s)
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("core: cannot encode %s", d)
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Vec is a signed displacement on the grid.
type Vec struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Displacement returns the unit vector of d scaled by magnitude.
// Screen coordinates are used, so UP decreases Y.
// It panics if d is not a declared direction; there is no fallback.
func Displacement(d Direction, magnitude int) Vec {
	switch d {
	case DirUp:
		return Vec{DX: 0, DY: -magnitude}
	case DirRight:
		return Vec{DX: magnitude, DY: 0}
	case DirDown:
		return Vec{DX: 0, DY: magnitude}
	case DirLeft:
		return Vec{DX: -magnitude, DY: 0}
	}
	panic(fmt.Sprintf("core: displacement of invalid %s", d))
}

// Rect represents an axis-aligned area on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
