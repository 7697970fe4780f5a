package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/board"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var (
	flagWatch   bool
	flagActions bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Rebuild a recorded session",
	Long: `Rebuild the final board of a recorded session by replaying its action
log from the stored initial board, and print it as JSON.

Examples:
  snake replay 3f2a9c1e-...              # final snapshot as JSON
  snake replay 3f2a9c1e-... --actions    # action log, one JSON object per line
  snake replay 3f2a9c1e-... --watch      # step through it in the terminal`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Step through the session in the terminal")
	replayCmd.Flags().BoolVar(&flagActions, "actions", false, "Print the action log instead of the final board")
}

func runReplay(_ *cobra.Command, args []string) error {
	id := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := requireStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	switch {
	case flagWatch:
		frames, err := st.Frames(id)
		if err != nil {
			return err
		}
		return tui.Run(tui.NewReplayModel(fmt.Sprintf("REPLAY %s", id), frames))

	case flagActions:
		actions, err := st.Actions(id)
		if err != nil {
			return err
		}
		for _, a := range actions {
			data, err := board.EncodeAction(a)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		}
		return nil
	}

	final, err := st.Replay(id)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(final)
}
