package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Without arguments, display plays, wins and the best score of every game.
With a game id, display the top 10 sessions of that game.

Examples:
  arcade scores
  arcade scores snake`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	a := mustOpenApp(false)
	defer a.Close()

	if len(args) == 0 {
		printStats(a)
		return
	}

	gameID := args[0]
	desc, ok := a.registry.Lookup(gameID)
	if !ok {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	scores, err := a.db.TopScores(gameID, 10)
	if err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", desc.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", desc.MetricLabel, "Result", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		result := "lost"
		if entry.Won {
			result = "won"
		}
		date := time.UnixMilli(entry.Timestamp).Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6s  %s\n", i+1, entry.Score, result, date)
	}

	fmt.Println()
	if best, ok := a.store.HighScore(gameID); ok {
		fmt.Printf("Best: %d\n", best)
	}
}

func printStats(a *app) {
	stats := a.store.Stats(a.registry.IDs())

	fmt.Println("Arcade statistics")
	fmt.Println()
	fmt.Printf("  %-14s  %5s  %4s  %6s  %6s  %s\n", "Game", "Plays", "Wins", "Best", "Time", "Last played")
	fmt.Printf("  %-14s  %5s  %4s  %6s  %6s  %s\n", "----", "-----", "----", "----", "----", "-----------")

	for _, s := range stats {
		title := s.GameID
		if d, ok := a.registry.Lookup(s.GameID); ok {
			title = d.Title
		}
		best, last := "-", "-"
		if s.Plays > 0 {
			best = fmt.Sprint(s.Best)
			last = time.UnixMilli(s.LastPlayed).Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-14s  %5d  %4d  %6s  %5dm  %s\n", title, s.Plays, s.Wins, best, s.TotalMinutes(), last)
	}
}
