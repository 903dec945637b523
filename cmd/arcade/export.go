package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export history, high scores and settings as JSON",
	Long: `Write the complete arcade state as an indented JSON document.
Without a file argument the document is written to stdout.

Examples:
  arcade export
  arcade export backup.json`,
	Args: cobra.MaximumNArgs(1),
	Run:  runExport,
}

func runExport(_ *cobra.Command, args []string) {
	a := mustOpenApp(false)
	data, err := a.store.Export()
	a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		os.Stdout.Write(append(data, '\n'))
		return
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported to %s\n", args[0])
}
