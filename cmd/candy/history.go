package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/storage"
)

var (
	flagHistoryMode  string
	flagHistoryLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled sessions",
	Long: `Display the most recent journaled sessions, newest first.

The ID column can be passed to 'candy replay'. Any unique prefix of a
session ID works.

Examples:
  candy history
  candy history --mode endless --limit 5
  candy history delete 3f2a9c1e`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journaled session",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryDelete,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryMode, "mode", "", "Only show campaign or endless sessions")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
	historyCmd.AddCommand(historyDeleteCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := ""
	if flagHistoryMode != "" {
		id, err := gameIDForMode(flagHistoryMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		gameID = id
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	sessions, err := store.RecentSessions(gameID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions journaled yet.")
		fmt.Println()
		fmt.Println("Play 'candy play' to start one!")
		return
	}

	fmt.Printf("  %-8s  %-14s  %-3s  %7s  %7s  %-4s  %s\n", "ID", "Game", "Lvl", "Score", "Ticks", "Done", "Played")
	fmt.Printf("  %-8s  %-14s  %-3s  %7s  %7s  %-4s  %s\n", "--", "----", "---", "-----", "-----", "----", "------")
	for _, s := range sessions {
		level := "-"
		if s.StartLevel > 0 {
			level = fmt.Sprintf("%d", s.StartLevel)
		}
		done := "no"
		if s.Finished {
			done = "yes"
		}
		fmt.Printf("  %-8s  %-14s  %-3s  %7d  %7d  %-4s  %s\n",
			s.ID[:min(8, len(s.ID))], s.GameID, level, s.Score, s.Ticks, done,
			s.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runHistoryDelete(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Resolve a prefix to the full ID first
	rec, err := store.Session(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if err := store.DeleteSession(rec.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Deleted session %s\n", rec.ID)
}
