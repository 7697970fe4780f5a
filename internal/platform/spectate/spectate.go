// Package spectate streams board snapshots to websocket clients.
// The feed is read-only: clients receive the JSON snapshot on connect and
// after every change, and anything they send is discarded.
package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/board"
)

// Source is the board a feed watches. *store.Controller satisfies it.
type Source interface {
	State() board.State
	Subscribe() (<-chan board.State, func())
}

// Handler upgrades HTTP requests to a snapshot feed.
type Handler struct {
	src          Source
	logger       *log.Logger
	writeTimeout time.Duration
}

// NewHandler creates a feed handler for src.
func NewHandler(src Source, logger *log.Logger) *Handler {
	return &Handler{
		src:          src,
		logger:       logger,
		writeTimeout: 5 * time.Second,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Spectators may come from any origin
	})
	if err != nil {
		h.logger.Error("failed to accept", "error", err)
		return
	}

	id := uuid.NewString()
	h.logger.Info("spectator joined", "id", id, "remote", r.RemoteAddr)

	err = h.stream(r.Context(), conn)
	status := websocket.CloseStatus(err)
	switch {
	case err == nil, status == websocket.StatusNormalClosure, status == websocket.StatusGoingAway,
		errors.Is(err, context.Canceled):
		h.logger.Info("spectator left", "id", id)
	default:
		h.logger.Warn("spectator dropped", "id", id, "error", err)
	}
	conn.Close(websocket.StatusNormalClosure, "") //nolint:errcheck // connection may already be gone
}

func (h *Handler) stream(ctx context.Context, conn *websocket.Conn) error {
	ctx = conn.CloseRead(ctx)

	updates, cancel := h.src.Subscribe()
	defer cancel()

	if err := h.write(ctx, conn, h.src.State()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if err := h.write(ctx, conn, s); err != nil {
				return err
			}
		}
	}
}

func (h *Handler) write(ctx context.Context, conn *websocket.Conn, s board.State) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, s)
}

// Server serves the feed over HTTP at /ws.
type Server struct {
	addr   string
	server *http.Server
	logger *log.Logger
}

// NewServer creates a feed server for src listening on addr.
func NewServer(addr string, src Source, logger *log.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", NewHandler(src, logger))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("spectate: cannot listen on %s: %w", s.addr, err)
	}
	s.logger.Info("spectate feed listening", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}
