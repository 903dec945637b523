package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-hub/internal/platform/httpapi"
)

var flagAPIAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Serve the catalog, statistics, history, settings and JSON export/import
over HTTP. /api/v1/live streams every state change over a WebSocket.

Examples:
  arcade api
  arcade api --addr 127.0.0.1:9000
  curl localhost:8080/api/v1/stats`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	a := mustOpenApp(false)
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting arcade API on %s\n", flagAPIAddr)
	server := httpapi.NewServer(a.registry, a.store, a.logger)
	if err := server.ListenAndServe(ctx, flagAPIAddr); err != nil {
		a.Close()
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
