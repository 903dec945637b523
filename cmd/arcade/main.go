// arcade is a terminal arcade hub: Tic-Tac-Toe, Snake and Minesweeper with
// a persistent play history, high scores and settings.
//
// Usage:
//
//	arcade list                    - List the catalog
//	arcade play <game>             - Play a game directly
//	arcade menu                    - Start the hub menu
//	arcade scores [game]           - Show best scores or per-game stats
//	arcade export [file]           - Write history, scores and settings as JSON
//	arcade import <file>           - Replace all data from an export
//	arcade settings                - Show or change volume and theme
//	arcade serve                   - Start the SSH server for remote play
//	arcade api                     - Start the HTTP API
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/arcade.db)
//	--config <path>       - Use a YAML or TOML config file
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade Hub - classic games in your terminal",
	Long: `Arcade Hub is a terminal game collection with a shared history,
high scores and settings.

Available commands:
  list      - Show the game catalog
  play      - Play a specific game directly
  menu      - Interactive hub with stats and settings
  scores    - View best scores and statistics
  export    - Export all data as JSON
  import    - Replace all data from a JSON export
  settings  - Show or change volume and theme
  serve     - Start SSH server for remote play
  api       - Start the HTTP API

Examples:
  arcade list
  arcade play snake --difficulty hard
  arcade menu
  arcade scores minesweeper
  arcade export backup.json
  arcade serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/arcade.db", "Path to the arcade database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/arcade.log", "Log file used while a terminal UI is running")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
}
