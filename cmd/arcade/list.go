package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/games"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all games in the catalog",
	Long:  `Shows every game in the arcade catalog, including the ones that are not playable yet.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	catalog := games.NewCatalog(cfg).List()

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range catalog {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	// Print header
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "Status")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "------")

	for _, g := range catalog {
		status := "playable"
		if !g.Playable {
			status = "coming soon"
		}
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, g.ID, g.Title, status)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
