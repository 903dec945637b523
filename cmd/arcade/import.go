package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data from a JSON export",
	Long: `Replace the history, high scores and settings with the contents of a
file written by 'arcade export'. A malformed file leaves the current data
untouched.

Examples:
  arcade import backup.json`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func runImport(_ *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
		os.Exit(1)
	}

	a := mustOpenApp(false)
	err = a.store.Import(data)
	if err == nil {
		snap := a.store.Snapshot()
		fmt.Printf("Imported %d sessions and %d high scores\n", len(snap.Sessions), len(snap.HighScores))
	}
	a.Close()

	switch {
	case errors.Is(err, store.ErrInvalidTransfer):
		fmt.Fprintf(os.Stderr, "Error: %s is not a valid arcade export: %v\n", args[0], err)
		os.Exit(1)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
