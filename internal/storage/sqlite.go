// Package storage provides SQLite-based recording of board sessions.
// A session stores the initializer parameters plus every dispatched action,
// which is enough to rebuild any snapshot by replaying the log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/store"
)

// ErrSessionNotFound is returned when a session ID has no record.
var ErrSessionNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for session recordings.
type Store struct {
	db *sql.DB
}

// BoardParams are the initializer inputs stored with a session.
type BoardParams struct {
	CellSize      int
	Width         int
	Height        int
	InitialLength int
}

// ParamsOf extracts the initializer inputs that produced s.
func ParamsOf(s board.State) BoardParams {
	return BoardParams{
		CellSize:      s.Grid.CellSize,
		Width:         s.Grid.Width,
		Height:        s.Grid.Height,
		InitialLength: s.Snake.Len(),
	}
}

// Initial builds the board the session started from.
func (p BoardParams) Initial() (board.State, error) {
	return board.Initialize(p.CellSize, p.Width, p.Height, p.InitialLength)
}

// SessionInfo describes a recorded session.
type SessionInfo struct {
	ID          string
	Label       string // Player name or source of the session
	Params      BoardParams
	ActionCount int
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	st := &Store{db: db}

	// Run migrations
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return st, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL DEFAULT '',
			cell_size INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			initial_length INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			body TEXT NOT NULL,
			UNIQUE (session_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_actions_session ON actions(session_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateSession registers a new session starting from initial and returns
// a Recording that appends actions to it.
func (s *Store) CreateSession(label string, initial board.State) (*Recording, error) {
	id := uuid.NewString()
	p := ParamsOf(initial)

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, label, cell_size, width, height, initial_length)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, label, p.CellSize, p.Width, p.Height, p.InitialLength,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create session: %w", err)
	}

	return &Recording{store: s, id: id}, nil
}

// Sessions lists the most recent sessions, newest first.
func (s *Store) Sessions(limit int) ([]SessionInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT s.id, s.label, s.cell_size, s.width, s.height, s.initial_length,
		        (SELECT COUNT(*) FROM actions a WHERE a.session_id = s.id),
		        s.created_at
		 FROM sessions s
		 ORDER BY s.created_at DESC, s.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		info, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionByID retrieves a single session.
func (s *Store) SessionByID(id string) (SessionInfo, error) {
	row := s.db.QueryRow(
		`SELECT s.id, s.label, s.cell_size, s.width, s.height, s.initial_length,
		        (SELECT COUNT(*) FROM actions a WHERE a.session_id = s.id),
		        s.created_at
		 FROM sessions s
		 WHERE s.id = ?`,
		id,
	)

	info, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return SessionInfo{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return info, err
}

// Actions returns the recorded actions of a session in dispatch order.
func (s *Store) Actions(id string) ([]board.Action, error) {
	rows, err := s.db.Query(
		`SELECT body FROM actions WHERE session_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query actions: %w", err)
	}
	defer rows.Close()

	var actions []board.Action
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a, err := board.DecodeAction([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("storage: corrupt action in session %s: %w", id, err)
		}
		actions = append(actions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return actions, nil
}

// Frames rebuilds every snapshot of a session: the initial board followed by
// the state after each recorded action.
func (s *Store) Frames(id string) ([]board.State, error) {
	info, err := s.SessionByID(id)
	if err != nil {
		return nil, err
	}
	state, err := info.Params.Initial()
	if err != nil {
		return nil, fmt.Errorf("storage: session %s has invalid parameters: %w", id, err)
	}
	actions, err := s.Actions(id)
	if err != nil {
		return nil, err
	}

	frames := make([]board.State, 0, len(actions)+1)
	frames = append(frames, state)
	for i, a := range actions {
		state, err = board.Apply(state, a)
		if err != nil {
			return nil, fmt.Errorf("storage: session %s action %d: %w", id, i, err)
		}
		frames = append(frames, state)
	}
	return frames, nil
}

// Replay rebuilds the final snapshot of a session.
func (s *Store) Replay(id string) (board.State, error) {
	frames, err := s.Frames(id)
	if err != nil {
		return board.State{}, err
	}
	return frames[len(frames)-1], nil
}

// DeleteSession removes a session and its actions.
func (s *Store) DeleteSession(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM actions WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete actions: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// Recording appends actions to one session. It implements store.Recorder.
type Recording struct {
	store *Store
	id    string

	mu  sync.Mutex
	seq int
}

// ID returns the session ID.
func (r *Recording) ID() string {
	return r.id
}

// Record appends a to the session log.
func (r *Recording) Record(a board.Action) error {
	body, err := board.EncodeAction(a)
	if err != nil {
		return fmt.Errorf("storage: cannot encode action: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.store.db.Exec(
		"INSERT INTO actions (session_id, seq, type, body) VALUES (?, ?, ?, ?)",
		r.id, r.seq, a.ActionType(), string(body),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record action: %w", err)
	}
	r.seq++
	return nil
}

// Ensure Recording implements store.Recorder
var _ store.Recorder = (*Recording)(nil)

// Rewind drops the most recently recorded action.
func (r *Recording) Rewind() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.seq == 0 {
		return nil
	}
	_, err := r.store.db.Exec(
		"DELETE FROM actions WHERE session_id = ? AND seq = ?",
		r.id, r.seq-1,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot rewind action: %w", err)
	}
	r.seq--
	return nil
}

// Restart clears the action log and stores initial as the new starting board.
func (r *Recording) Restart(initial board.State) error {
	p := ParamsOf(initial)

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM actions WHERE session_id = ?", r.id); err != nil {
		return fmt.Errorf("storage: cannot clear actions: %w", err)
	}
	_, err = tx.Exec(
		`UPDATE sessions SET cell_size = ?, width = ?, height = ?, initial_length = ?
		 WHERE id = ?`,
		p.CellSize, p.Width, p.Height, p.InitialLength, r.id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit restart: %w", err)
	}
	r.seq = 0
	return nil
}

// Ensure Recording can follow Undo and Reset
var (
	_ store.Rewinder  = (*Recording)(nil)
	_ store.Restarter = (*Recording)(nil)
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionInfo, error) {
	var info SessionInfo
	var createdAt any
	err := row.Scan(
		&info.ID,
		&info.Label,
		&info.Params.CellSize,
		&info.Params.Width,
		&info.Params.Height,
		&info.Params.InitialLength,
		&info.ActionCount,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return info, err
	}
	if err != nil {
		return info, fmt.Errorf("storage: cannot scan session: %w", err)
	}
	info.CreatedAt = parseTime(createdAt)
	return info, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
