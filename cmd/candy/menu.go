package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start candy with a mode picker menu",
	Long: `Start candy in interactive menu mode.

Pick campaign, endless or a starting level, or browse the session
history. After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc          - Back
  Q            - Quit

Examples:
  candy menu
  candy menu --difficulty hard
  candy menu --db ./journal.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	addConfigFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	seeded := flagSeed != 0

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsHistory {
			var source tui.SessionSource
			if store != nil {
				source = store
			}
			goBack, err := tui.RunHistory(source, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}
		candy.SetStartLevel(menuResult.Level)

		// A fixed --seed applies to the first game only
		if !seeded {
			cfg.Seed = time.Now().UnixNano()
		}
		seeded = false

		if err := runGame(menuResult.GameID, cfg, store, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
