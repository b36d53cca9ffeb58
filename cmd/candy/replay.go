package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

var flagShowBoard bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-run a journaled session and verify it",
	Long: `Rebuild a journaled session from its seed and configuration, apply
every recorded swap at its recorded tick, and check that the swap
outcomes, tick count and score come out the same.

Sessions that were never finished are checked swap by swap only.

Examples:
  candy replay 3f2a9c1e
  candy replay 3f2a9c1e --board`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the final board")
}

func runReplay(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	session, err := store.Session(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	swaps, err := store.Swaps(session.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rec, err := recordingFromJournal(session, swaps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("replaying", "session", session.ID, "game", rec.GameID, "seed", rec.Seed, "swaps", len(rec.Swaps))

	res, err := candy.Replay(rec)
	if flagShowBoard {
		fmt.Println(res.Snapshot.Board)
		fmt.Println()
	}
	switch {
	case errors.Is(err, candy.ErrReplayDiverged):
		fmt.Fprintf(os.Stderr, "Session %s does not replay: %v\n", session.ID, err)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	status := "verified"
	if rec.Unfinished {
		status = "swaps verified, session was not finished"
	}
	fmt.Printf("Session %s: %d swaps, %d ticks, score %d (%s)\n",
		session.ID, res.Swaps, res.Snapshot.SessionTick, res.Snapshot.Score, status)
}

// recordingFromJournal converts journal rows into a replayable recording.
// The stored configuration is parsed and validated like a config file.
func recordingFromJournal(session *storage.SessionRecord, swaps []storage.SwapRecord) (candy.Recording, error) {
	cfg, err := config.Parse([]byte(session.Config))
	if err != nil {
		return candy.Recording{}, fmt.Errorf("session %s: stored config: %w", session.ID, err)
	}

	rec := candy.Recording{
		GameID:     session.GameID,
		Seed:       session.Seed,
		StartLevel: session.StartLevel,
		Config:     cfg,
		Ticks:      session.Ticks,
		Score:      session.Score,
		Unfinished: !session.Finished,
		Swaps:      make([]candy.RecordedSwap, 0, len(swaps)),
	}
	for _, sw := range swaps {
		rec.Swaps = append(rec.Swaps, candy.RecordedSwap{
			Tick:      sw.Tick,
			From:      sw.From,
			To:        sw.To,
			Committed: sw.Committed,
		})
	}
	return rec, nil
}
