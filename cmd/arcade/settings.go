package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change volume and theme",
	Long: `Without a subcommand, print the current settings.

Examples:
  arcade settings
  arcade settings volume 0.8
  arcade settings theme toggle`,
	Args: cobra.NoArgs,
	Run:  runSettings,
}

var volumeCmd = &cobra.Command{
	Use:   "volume <0..1>",
	Short: "Set the sound volume; values outside 0..1 are clamped",
	Args:  cobra.ExactArgs(1),
	Run:   runVolume,
}

var themeCmd = &cobra.Command{
	Use:       "theme toggle",
	Short:     "Switch between the light and dark theme",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	Run:       runTheme,
}

func init() {
	settingsCmd.AddCommand(volumeCmd)
	settingsCmd.AddCommand(themeCmd)
}

func runSettings(_ *cobra.Command, _ []string) {
	a := mustOpenApp(false)
	defer a.Close()
	printSettings(a)
}

func runVolume(_ *cobra.Command, args []string) {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid volume %q\n", args[0])
		os.Exit(1)
	}

	a := mustOpenApp(false)
	if err := a.store.SetVolume(v); err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printSettings(a)
	a.Close()
}

func runTheme(_ *cobra.Command, _ []string) {
	a := mustOpenApp(false)
	if _, err := a.store.ToggleTheme(); err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printSettings(a)
	a.Close()
}

func printSettings(a *app) {
	s := a.store.Settings()
	fmt.Printf("Theme:  %s\n", s.Theme)
	fmt.Printf("Volume: %d%%\n", int(s.Volume*100+0.5))
}
