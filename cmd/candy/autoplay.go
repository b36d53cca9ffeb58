package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

var (
	flagAutoTicks int
	flagAutoEvery int
	flagAutoSave  bool
	flagAutoMode  string
	flagAutoLevel int
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the move finder play headless",
	Long: `Run a game without a terminal UI. Every few ticks, once the board has
settled, the first legal swap the move finder sees is played.

With --save the run is journaled like an interactive session and can be
checked later with 'candy replay'.

Examples:
  candy autoplay --seed 7
  candy autoplay --mode campaign --ticks 5000 --every 3
  candy autoplay --difficulty easy --save --board`,
	Args: cobra.NoArgs,
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().StringVar(&flagAutoMode, "mode", string(candy.ModeEndless), "Game mode: campaign or endless")
	autoplayCmd.Flags().IntVar(&flagAutoLevel, "level", 0, "Campaign start level (1-10, 0 = first)")
	autoplayCmd.Flags().IntVar(&flagAutoTicks, "ticks", 2000, "Maximum ticks to run")
	autoplayCmd.Flags().IntVar(&flagAutoEvery, "every", 5, "Ticks between moves")
	autoplayCmd.Flags().BoolVar(&flagAutoSave, "save", false, "Journal the run")
	autoplayCmd.Flags().BoolVar(&flagShowBoard, "board", false, "Print the final board")
	addConfigFlags(autoplayCmd)
}

func runAutoplay(cmd *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	gameID, err := gameIDForMode(flagAutoMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mode, _ := candy.ModeForID(gameID)
	if flagAutoTicks <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --ticks must be positive")
		os.Exit(1)
	}

	cfg, err := loadConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := seedOrNow()
	logger.Debug("autoplay", "mode", mode, "seed", seed, "ticks", flagAutoTicks, "every", flagAutoEvery)

	res := candy.Autoplay(candy.AutoplayOptions{
		Mode:       mode,
		Config:     cfg,
		Seed:       seed,
		StartLevel: flagAutoLevel,
		Ticks:      flagAutoTicks,
		Every:      flagAutoEvery,
	})

	if flagShowBoard {
		fmt.Println(res.Snapshot.Board)
		fmt.Println()
	}

	snap := res.Snapshot
	fmt.Printf("Seed %d, %s: score %d after %d ticks\n", seed, mode, snap.Score, snap.SessionTick)
	fmt.Printf("Swaps: %d (%d committed), reshuffles: %d\n", res.Swaps, res.Committed, res.Reshuffles)
	if mode == candy.ModeCampaign {
		fmt.Printf("Level %d, state %s\n", snap.Level, snap.State)
	}

	if flagAutoSave {
		id, err := saveRecording(res.Recording)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error journaling run: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Journaled as %s\n", id)
	}
}

// saveRecording writes a finished recording to the journal.
func saveRecording(rec candy.Recording) (string, error) {
	cfgYAML, err := config.Marshal(rec.Config)
	if err != nil {
		return "", err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	id, err := store.BeginSession(rec.GameID, rec.Seed, rec.StartLevel, string(cfgYAML))
	if err != nil {
		return "", err
	}
	for _, sw := range rec.Swaps {
		if err := store.RecordSwap(id, sw.Tick, sw.From, sw.To, sw.Committed); err != nil {
			return id, err
		}
	}
	return id, store.FinishSession(id, rec.Ticks, rec.Score)
}
