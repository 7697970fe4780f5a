package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/logging"
	"github.com/vovakirdan/tui-snake/internal/platform/spectate"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
	"github.com/vovakirdan/tui-snake/internal/store"
)

var (
	flagSpeed     string
	flagMenu      bool
	flagNoRecord  bool
	flagLabel     string
	flagSpectate  string
	flagLogFile   string
	flagAutoStart bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the local terminal",
	Long: `Start a board in the local terminal.

Controls:
  Arrows/WASD  - Change direction
  Space/P      - Play/pause
  +/-          - Faster/slower
  U            - Undo the last step
  R            - Restart
  ?            - Help
  Q/Ctrl+C     - Quit

Speed presets:
  slow (200ms), normal (120ms), fast (70ms), insane (35ms)

Examples:
  snake play
  snake play --speed fast
  snake play --menu
  snake play --spectate :8080     # watch at ws://localhost:8080/ws`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, insane")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the speed from a menu first")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the session")
	playCmd.Flags().StringVar(&flagLabel, "label", "", "Label stored with the recording (default: $USER)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve the websocket snapshot feed on this address")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
	playCmd.Flags().BoolVar(&flagAutoStart, "start", false, "Start moving immediately")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)); err != nil {
		return err
	}
	if flagSpectate != "" {
		cfg.Spectate.Address = flagSpectate
	}

	// Get terminal size for the speed menu
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if flagMenu {
		preset, ok, err := runSpeedMenu(width, height)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := config.ApplySpeedPreset(&cfg, preset); err != nil {
			return err
		}
	}

	// The terminal belongs to the board, so logs go to a file or nowhere.
	logger := logging.Discard()
	if flagLogFile != "" {
		f, err := os.OpenFile(config.ExpandHome(flagLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		if logger, err = logging.NewWithWriter(f, cfg.Log.Level, "snake"); err != nil {
			logger.Warn("using default log level", "error", err)
		}
	}

	initial, err := cfg.NewBoard()
	if err != nil {
		return err
	}

	opts := []store.Option{
		store.WithLogger(logger),
		store.WithHistoryLimit(cfg.Play.HistoryLimit),
	}

	var rec *storage.Recording
	if !flagNoRecord {
		st, err := openStore(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open session database: %v\n", err)
		}
		if st != nil {
			defer st.Close()
			rec, err = st.CreateSession(recordingLabel(), initial)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: session will not be recorded: %v\n", err)
			} else {
				opts = append(opts, store.WithRecorder(rec))
			}
		}
	}

	ctrl := store.New(initial, opts...)

	modelOpts := []tui.Option{tui.WithRestart(cfg.NewBoard)}
	if flagAutoStart {
		modelOpts = append(modelOpts, tui.WithAutoPlay())
	}
	model := tui.NewModel(ctrl, cfg.Play.TickIntervalMS, modelOpts...)

	if err := runBoard(cmd.Context(), cfg, ctrl, model, logger); err != nil {
		return err
	}

	if rec != nil {
		fmt.Printf("Recorded session %s\n", rec.ID())
		fmt.Printf("Replay with: snake replay %s --watch\n", rec.ID())
	}
	return nil
}

// runBoard runs the terminal UI and, when configured, the spectate feed.
// Leaving the UI stops the feed.
func runBoard(ctx context.Context, cfg config.Config, ctrl *store.Controller, model tea.Model, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		return tui.Run(model, tea.WithContext(gctx))
	})

	if cfg.Spectate.Address != "" {
		srv := spectate.NewServer(cfg.Spectate.Address, ctrl, logger)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	return g.Wait()
}

func runSpeedMenu(width, height int) (config.SpeedPreset, bool, error) {
	p := tea.NewProgram(tui.NewSpeedMenuModel(width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, ok := final.(tui.SpeedMenuModel)
	if !ok {
		return "", false, nil
	}
	preset, ok := m.Selected()
	return preset, ok, nil
}

func recordingLabel() string {
	if flagLabel != "" {
		return flagLabel
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
