package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. The session is recorded in the
history when the game ends.

Controls:
  Arrows/WASD  - Move
  Enter/Space  - Place, reveal
  F/X          - Flag (Minesweeper)
  P            - Pause
  R            - Restart (after game over)
  Esc/B        - Leave the game
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - Slower snake, fewer mines
  normal  - Defaults from the config file
  hard    - Faster snake, a 16x16 minefield

Examples:
  arcade play tic-tac-toe
  arcade play snake --difficulty hard
  arcade play minesweeper --seed 42
  arcade play snake --config ./my-arcade.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	a := mustOpenApp(true)

	// Check if game exists
	if _, ok := a.registry.Lookup(gameID); !ok {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Coming-soon entries resolve to their placeholder screen.
	factory, _ := a.registry.Resolve(gameID)

	runErr := tui.Run(factory(), a.store, a.runtimeConfig(), a.logger)
	a.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
