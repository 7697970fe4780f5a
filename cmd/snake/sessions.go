package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagLimit  int
	flagBrowse bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions",
	Long: `List recorded sessions, newest first.

Examples:
  snake sessions
  snake sessions --limit 50
  snake sessions --browse          # pick one and watch it
  snake sessions rm 3f2a9c1e-...`,
	Args: cobra.NoArgs,
	RunE: runSessions,
}

var sessionsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recorded session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsRm,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to list")
	sessionsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse sessions interactively")
	sessionsCmd.AddCommand(sessionsRmCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := requireStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.Run(tui.NewSessionsModel(st, width, height))
	}

	sessions, err := st.Sessions(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snake play' to record one.")
		return nil
	}

	fmt.Printf("  %-36s  %-12s  %-14s  %-7s  %s\n", "ID", "Label", "Board", "Actions", "Recorded")
	fmt.Printf("  %-36s  %-12s  %-14s  %-7s  %s\n", "--", "-----", "-----", "-------", "--------")
	for _, s := range sessions {
		p := s.Params
		board := fmt.Sprintf("%dx%d/%d", p.Width, p.Height, p.CellSize)
		fmt.Printf("  %-36s  %-12s  %-14s  %-7d  %s\n",
			s.ID, s.Label, board, s.ActionCount, s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsRm(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := requireStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteSession(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}
