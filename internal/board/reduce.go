package board

import "fmt"

// Reduce returns the state that follows s after a.
// It never modifies s; actions it does not recognize return s unchanged.
// A ChangeDirection carrying a direction outside the enum is a caller bug and
// panics; use Apply to get an error instead.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Play:
		s.IsPlaying = true
		s.TickInterval = intPtr(a.TickInterval)
		return s

	case Pause:
		s.IsPlaying = false
		s.TickInterval = nil
		return s

	case Tick:
		s.TickCount++
		return s

	case Move:
		s.Snake = moveSnake(s.Snake, a)
		return s

	case ChangeDirection:
		if !a.Direction.Valid() {
			panic(fmt.Sprintf("board: change to invalid %s", a.Direction))
		}
		s.Snake.Direction = a.Direction
		return s
	}

	return s
}

// Apply validates a and then reduces it.
// The returned error wraps ErrInvalidArgument; s is returned unchanged in that case.
func Apply(s State, a Action) (State, error) {
	if err := Validate(a); err != nil {
		return s, err
	}
	return Reduce(s, a), nil
}

// ReduceAll folds actions over s in order.
func ReduceAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

// moveSnake builds a new body where each segment takes the position of the
// one ahead of it and the head moves by the payload.
func moveSnake(snake Snake, m Move) Snake {
	n := len(snake.Blocks)
	if n == 0 {
		return snake
	}

	blocks := make([]Block, n)
	for i := 0; i < n-1; i++ {
		// Only the position follows; any other block fields stay with the segment.
		next := snake.Blocks[i]
		next.X = snake.Blocks[i+1].X
		next.Y = snake.Blocks[i+1].Y
		blocks[i] = next
	}
	blocks[n-1] = snake.Blocks[n-1].Add(m.Payload)

	return Snake{Blocks: blocks, Direction: snake.Direction}
}
