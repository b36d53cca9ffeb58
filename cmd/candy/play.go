package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/platform/tui"
	"github.com/vovakirdan/tui-candy/internal/registry"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing candy.

Controls:
  Arrows/hjkl  - Move cursor (with a token held: swap that way)
  Enter/Space  - Pick up or drop a token
  Mouse drag   - Swap two neighboring tokens
  Esc          - Put the held token back
  ?            - Show a hint
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five colors, 1.5x campaign moves
  normal - Six colors, the listed campaign moves
  hard   - Six colors, 0.75x campaign moves
  fixed  - Keep the config file's values

Examples:
  candy play
  candy play --level 4
  candy play --mode endless --difficulty easy
  candy play --config ./my-candy.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", string(candy.ModeCampaign), "Game mode: campaign or endless")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign start level (1-10, 0 = first)")
	addConfigFlags(playCmd)
}

// addConfigFlags registers --config and --difficulty on cmd.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags hands --config and --difficulty to the game package
// before a game is created.
func applyGameFlags() error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	candy.SetConfigPath(flagConfig)
	candy.SetDifficultyPreset(preset)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID, err := gameIDForMode(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagLevel < 0 || flagLevel > candy.LevelCount() {
		fmt.Fprintf(os.Stderr, "Error: level must be between 1 and %d\n", candy.LevelCount())
		os.Exit(1)
	}
	if flagLevel > 0 && gameID != candy.IDCampaign {
		fmt.Fprintln(os.Stderr, "Error: --level only applies to campaign mode")
		os.Exit(1)
	}
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	candy.SetStartLevel(flagLevel)

	logger, closeLog := newLogger(true)
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := runGame(gameID, terminalConfig(), store, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// terminalConfig builds the runtime config from the terminal size and
// the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: flagTick,
		Seed:         flagSeed,
	}
}

// openStore opens the journal. A journal that cannot be opened is logged
// and play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("journal disabled", "db", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
		return nil
	}
	return store
}

// runGame creates the game and runs it in the TUI, journaling into store
// when it is not nil.
func runGame(gameID string, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	opts := tui.Options{Logger: logger}
	if store != nil {
		opts.Journal = store
	}
	return tui.Run(game, cfg, opts)
}
