package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade hub menu",
	Long: `Start the arcade in interactive menu mode.

The menu shows every game with its best score. Finished games return
to the menu, and the statistics screen lists plays, wins and history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Statistics
  T            - Toggle light/dark theme
  +/-          - Volume up/down
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./arcade.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a := mustOpenApp(true)

	err := tui.RunSession(a.registry, a.store, a.runtimeConfig(), a.logger)
	a.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
