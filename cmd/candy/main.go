// candy is a terminal match-three game with a replayable session journal.
//
// Usage:
//
//	candy list               - List game modes
//	candy play               - Play a game
//	candy menu               - Start menu to pick a mode interactively
//	candy history            - List journaled sessions
//	candy replay <id>        - Re-run a journaled session and verify it
//	candy autoplay           - Let the move finder play headless
//	candy config             - Print the effective configuration
//
// Global flags:
//
//	--tick <duration>  - Override the board tick interval
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set journal path (default: ~/.candy/journal.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--log-file <path>  - Log destination while the TUI owns the terminal
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

var (
	// Global flags
	flagTick     time.Duration
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candy",
	Short: "Candy - a match-three board in your terminal",
	Long: `Candy is a terminal match-three game. Swap neighboring tokens to line
up three or more of a color; matches clear, tokens fall, and the board
refills. Every session is journaled so it can be replayed exactly.

Available commands:
  list      - Show the game modes
  play      - Play a game directly
  menu      - Interactive mode and level picker
  history   - List journaled sessions
  replay    - Re-run a journaled session and verify its score
  autoplay  - Let the move finder play headless
  config    - Print the effective configuration

Examples:
  candy play
  candy play --mode endless --difficulty hard
  candy menu
  candy history
  candy replay 3f2a9c1e`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().DurationVar(&flagTick, "tick", 0, "Board tick interval (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to session journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.candy/candy.log", "Log file used while the TUI runs")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the CLI logger. Interactive commands log to the log
// file so output does not tear the alt screen; headless ones log to stderr.
// The returned func closes the log file.
func newLogger(interactive bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "candy",
		Level:           level,
	}

	if !interactive || flagLogFile == "" {
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}

	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot create log directory: %v\n", err)
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}
	return log.NewWithOptions(f, opts), func() { f.Close() }
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig resolves the game configuration the same way the game does:
// search order, then the difficulty preset.
func loadConfig(path, difficulty string) (config.CandyConfig, error) {
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return config.CandyConfig{}, err
	}
	cfg, err := config.LoadCandy(path)
	if err != nil {
		return config.CandyConfig{}, err
	}
	config.ApplyCandyPreset(&cfg, preset)
	if flagTick > 0 {
		cfg.Timing.TickInterval = flagTick
	}
	return cfg, config.Validate(cfg)
}

// gameIDForMode maps the --mode flag to a registered game ID.
func gameIDForMode(mode string) (string, error) {
	switch candy.Mode(mode) {
	case candy.ModeCampaign:
		return candy.IDCampaign, nil
	case candy.ModeEndless:
		return candy.IDEndless, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %s or %s)", mode, candy.ModeCampaign, candy.ModeEndless)
}

// seedOrNow returns the --seed flag, or a time-based seed when it is 0.
func seedOrNow() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
