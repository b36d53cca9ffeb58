package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game modes and campaign levels",
	Long:  `Shows the registered game modes and the campaign's levels.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Game modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-16s  %7s  %5s\n", "#", "Name", "Target", "Moves")
	for i := range candy.LevelCount() {
		lvl := candy.GetLevel(i)
		fmt.Printf("  %-3d  %-16s  %7d  %5d\n", i+1, lvl.Name, lvl.Target, lvl.Moves)
	}

	fmt.Println()
	fmt.Println("Run 'candy play --mode endless' or 'candy play --level 3' to play.")
}
