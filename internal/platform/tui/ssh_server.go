package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/store"
)

// SSHServer serves one independent board per SSH session.
type SSHServer struct {
	cfg      config.Config
	server   *ssh.Server
	store    *storage.Store // nil disables recording
	logger   *log.Logger
	sessions atomic.Int64
}

// NewSSHServer creates the wish server described by cfg.SSH.
// When st is not nil every session is recorded under the SSH user name.
func NewSSHServer(cfg config.Config, st *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	srv := &SSHServer{
		cfg:    cfg,
		store:  st,
		logger: logger,
	}

	hostKeyPath := config.ExpandHome(cfg.SSH.HostKey)
	if hostKeyPath == "" {
		hostKeyPath = config.ExpandHome("~/.snake/host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.SSH.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler creates the program for one SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	initial, err := s.cfg.NewBoard()
	if err != nil {
		s.logger.Error("cannot build board", "error", err)
		return nil, nil
	}

	logger := s.logger.With("user", sess.User())
	opts := []store.Option{
		store.WithLogger(logger),
		store.WithHistoryLimit(s.cfg.Play.HistoryLimit),
	}
	if s.store != nil {
		rec, err := s.store.CreateSession(sess.User(), initial)
		if err != nil {
			logger.Warn("session will not be recorded", "error", err)
		} else {
			logger.Info("recording session", "session", rec.ID())
			opts = append(opts, store.WithRecorder(rec))
		}
	}

	ctrl := store.New(initial, opts...)
	model := NewSessionModel(ctrl, s.cfg, sess.User(), pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.sessions.Add(1)
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", n,
		)
		next(sess)
		n = s.sessions.Add(-1)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", n,
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) Run(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.SSH.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.cfg.SSH.Address
}

// SessionModel is the per-connection flow: speed menu, then the board.
type SessionModel struct {
	menu     SpeedMenuModel
	board    *Model
	ctrl     *store.Controller
	cfg      config.Config
	user     string
	width    int
	height   int
	quitting bool
}

// NewSessionModel creates the flow for one player.
func NewSessionModel(ctrl *store.Controller, cfg config.Config, user string, width, height int) SessionModel {
	return SessionModel{
		menu:   NewSpeedMenuModel(width, height),
		ctrl:   ctrl,
		cfg:    cfg,
		user:   user,
		width:  width,
		height: height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the menu or the board.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}

	if m.board != nil {
		next, cmd := m.board.Update(msg)
		if bm, ok := next.(Model); ok {
			m.board = &bm
			m.quitting = bm.quitting
		}
		return m, cmd
	}

	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(SpeedMenuModel); ok {
		m.menu = mm
	}
	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	preset, ok := m.menu.Selected()
	if !ok {
		return m, cmd
	}
	interval, err := config.TickIntervalForPreset(preset)
	if err != nil {
		interval = m.cfg.Play.TickIntervalMS
	}

	bm := NewModel(m.ctrl, interval,
		WithTitle(fmt.Sprintf("S N A K E  ·  %s", m.user)),
		WithRestart(m.cfg.NewBoard),
		WithAutoPlay(),
	)
	bm.help.Width = m.width
	m.board = &bm
	return m, bm.Init()
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	return m.menu.View()
}

// Board returns the current board snapshot of the session.
func (m SessionModel) Board() board.State {
	return m.ctrl.State()
}
