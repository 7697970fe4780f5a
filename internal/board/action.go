package board

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Action tags understood by Reduce.
const (
	TypePlay            = "PLAY"
	TypePause           = "PAUSE"
	TypeTick            = "TICK"
	TypeMove            = "MOVE"
	TypeChangeDirection = "CHANGE_DIRECTION"
)

// Action is a tagged record dispatched into Reduce.
// The interface is deliberately open: actions owned by unrelated features may
// share the dispatch channel and are passed through unchanged.
type Action interface {
	ActionType() string
}

// Play starts (or keeps) the board playing with the given tick interval.
type Play struct {
	TickInterval int // milliseconds between ticks, as read by the scheduler
}

// Pause stops the board and discards the tick interval.
type Pause struct{}

// Tick advances the tick counter by one.
type Tick struct{}

// Move shifts the body one follow-the-leader step and moves the head by Payload.
type Move struct {
	Payload core.Vec
}

// ChangeDirection sets the snake heading without moving it.
type ChangeDirection struct {
	Direction core.Direction
}

// Unknown carries a decoded action whose tag Reduce does not recognize.
type Unknown struct {
	Type    string
	Payload json.RawMessage
}

func (Play) ActionType() string            { return TypePlay }
func (Pause) ActionType() string           { return TypePause }
func (Tick) ActionType() string            { return TypeTick }
func (Move) ActionType() string            { return TypeMove }
func (ChangeDirection) ActionType() string { return TypeChangeDirection }
func (u Unknown) ActionType() string       { return u.Type }

// Validate checks the arguments of the known action variants.
// Unknown and foreign actions are always valid.
func Validate(a Action) error {
	switch a := a.(type) {
	case Play:
		if a.TickInterval <= 0 {
			return fmt.Errorf("%w: tick interval must be positive, got %d", ErrInvalidArgument, a.TickInterval)
		}
	case ChangeDirection:
		if !a.Direction.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, a.Direction)
		}
	}
	return nil
}

// envelope is the wire shape of an action.
type envelope struct {
	Type         string          `json:"type"`
	TickInterval *int            `json:"tickInterval,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
}

// EncodeAction renders a as its tagged JSON record.
func EncodeAction(a Action) ([]byte, error) {
	env := envelope{Type: a.ActionType()}

	switch a := a.(type) {
	case Play:
		env.TickInterval = intPtr(a.TickInterval)
	case Move:
		raw, err := json.Marshal(a.Payload)
		if err != nil {
			return nil, fmt.Errorf("board: cannot encode move payload: %w", err)
		}
		env.Payload = raw
	case ChangeDirection:
		raw, err := json.Marshal(a.Direction)
		if err != nil {
			return nil, fmt.Errorf("board: cannot encode direction: %w", err)
		}
		env.Payload = raw
	case Unknown:
		env.Payload = a.Payload
	}

	return json.Marshal(env)
}

// DecodeAction parses a tagged JSON record.
// Unrecognized tags decode to Unknown rather than failing.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("board: cannot decode action: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: action has no type", ErrInvalidArgument)
	}

	switch env.Type {
	case TypePlay:
		if env.TickInterval == nil {
			return nil, fmt.Errorf("%w: play requires tickInterval", ErrInvalidArgument)
		}
		return Play{TickInterval: *env.TickInterval}, nil
	case TypePause:
		return Pause{}, nil
	case TypeTick:
		return Tick{}, nil
	case TypeMove:
		var v struct {
			DX *int `json:"dx"`
			DY *int `json:"dy"`
		}
		if err := json.Unmarshal(env.Payload, &v); err != nil {
			return nil, fmt.Errorf("%w: move payload: %v", ErrInvalidArgument, err)
		}
		if v.DX == nil || v.DY == nil {
			return nil, fmt.Errorf("%w: move payload needs dx and dy", ErrInvalidArgument)
		}
		return Move{Payload: core.Vec{DX: *v.DX, DY: *v.DY}}, nil
	case TypeChangeDirection:
		var name string
		if err := json.Unmarshal(env.Payload, &name); err != nil {
			return nil, fmt.Errorf("%w: direction payload: %v", ErrInvalidArgument, err)
		}
		d, err := core.ParseDirection(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return ChangeDirection{Direction: d}, nil
	}

	return Unknown{Type: env.Type, Payload: bytes.Clone(env.Payload)}, nil
}
