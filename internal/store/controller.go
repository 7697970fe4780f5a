// Package store owns the latest board snapshot for one running board and
// serializes every action dispatched into it.
//
// Each Controller is an explicit value; there is no process-wide store.
// Transitions themselves are computed by board.Reduce.
package store

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/logging"
)

// Recorder receives every action accepted by a Controller, in dispatch order.
type Recorder interface {
	Record(a board.Action) error
}

// Rewinder is implemented by recorders that can drop their most recent action.
// Undo calls it so a recording stays in step with the board.
type Rewinder interface {
	Rewind() error
}

// Restarter is implemented by recorders that can start over from a new board.
// Reset calls it.
type Restarter interface {
	Restart(initial board.State) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithHistoryLimit bounds the number of past snapshots kept for Undo.
// Zero keeps every snapshot.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) {
		c.limit = n
	}
}

// WithRecorder forwards accepted actions to r.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// Controller holds the current board state, the snapshots that preceded it
// and the subscribers interested in new snapshots.
type Controller struct {
	mu       sync.Mutex
	state    board.State
	history  []board.State // oldest first
	limit    int
	subs     map[int]chan board.State
	nextSub  int
	recorder Recorder
	logger   *log.Logger
}

// New creates a controller starting from initial.
func New(initial board.State, opts ...Option) *Controller {
	c := &Controller{
		state:  initial,
		subs:   make(map[int]chan board.State),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current snapshot.
func (c *Controller) State() board.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a to the current snapshot and returns the new one.
// Invalid arguments are rejected with an error wrapping board.ErrInvalidArgument
// and leave the controller untouched.
func (c *Controller) Dispatch(a board.Action) (board.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.dispatchLocked(a); err != nil {
		return c.state, err
	}
	c.publishLocked()
	return c.state, nil
}

// Advance dispatches Tick followed by Move with the current velocity, as one step.
// It does nothing while the board is paused and reports whether it moved.
func (c *Controller) Advance() (board.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !board.IsPlaying(c.state) {
		return c.state, false
	}

	// Tick and Move never fail validation.
	_ = c.dispatchLocked(board.Tick{})
	_ = c.dispatchLocked(board.Move{Payload: board.Velocity(c.state)})
	c.publishLocked()
	return c.state, true
}

// Toggle pauses a playing board or plays a paused one with tickInterval.
func (c *Controller) Toggle(tickInterval int) (board.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var a board.Action = board.Play{TickInterval: tickInterval}
	if board.IsPlaying(c.state) {
		a = board.Pause{}
	}
	if err := c.dispatchLocked(a); err != nil {
		return c.state, err
	}
	c.publishLocked()
	return c.state, nil
}

// Undo restores the snapshot that preceded the last dispatch.
// It returns false when there is no history left.
func (c *Controller) Undo() (board.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.history)
	if n == 0 {
		return c.state, false
	}
	c.state = c.history[n-1]
	c.history = c.history[:n-1]
	if r, ok := c.recorder.(Rewinder); ok {
		if err := r.Rewind(); err != nil {
			c.logger.Warn("could not rewind recording", "error", err)
		}
	}
	c.logger.Debug("undo", "state", c.state, "history", len(c.history))
	c.publishLocked()
	return c.state, true
}

// Reset replaces the board and drops the history.
func (c *Controller) Reset(s board.State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = s
	c.history = nil
	if r, ok := c.recorder.(Restarter); ok {
		if err := r.Restart(s); err != nil {
			c.logger.Warn("could not restart recording", "error", err)
		}
	}
	c.logger.Debug("reset", "state", c.state)
	c.publishLocked()
}

// History returns a copy of the retained past snapshots, oldest first.
func (c *Controller) History() []board.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]board.State, len(c.history))
	copy(out, c.history)
	return out
}

// Subscribe returns a channel that receives the latest snapshot after every change.
// Slow subscribers only ever see the most recent snapshot. The returned function
// unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan board.State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan board.State, 1)
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Controller) dispatchLocked(a board.Action) error {
	next, err := board.Apply(c.state, a)
	if err != nil {
		c.logger.Warn("rejected action", "type", a.ActionType(), "error", err)
		return err
	}

	c.history = append(c.history, c.state)
	if c.limit > 0 && len(c.history) > c.limit {
		c.history = c.history[len(c.history)-c.limit:]
	}
	c.state = next

	if c.recorder != nil {
		if err := c.recorder.Record(a); err != nil {
			// Best-effort: the board keeps running without a recording.
			c.logger.Warn("could not record action", "type", a.ActionType(), "error", err)
		}
	}

	c.logger.Debug("dispatch", "type", a.ActionType(), "state", c.state)
	return nil
}

// publishLocked hands the current snapshot to every subscriber, replacing any
// snapshot the subscriber has not consumed yet.
func (c *Controller) publishLocked() {
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- c.state
	}
}
