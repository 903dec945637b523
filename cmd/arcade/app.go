package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-hub/internal/config"
	"github.com/vovakirdan/arcade-hub/internal/core"
	"github.com/vovakirdan/arcade-hub/internal/games"
	"github.com/vovakirdan/arcade-hub/internal/registry"
	"github.com/vovakirdan/arcade-hub/internal/storage"
	"github.com/vovakirdan/arcade-hub/internal/store"
)

// app bundles what every command needs: the loaded config, the catalog and
// the store backed by SQLite.
type app struct {
	cfg      config.Config
	registry *registry.Registry
	db       *storage.Store
	store    *store.Store
	logger   *log.Logger
	logFile  io.Closer
}

// loadConfig reads the config file and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return config.Config{}, err
		}
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger. While a terminal UI owns the screen
// the log goes to --log-file instead of stderr.
func newLogger(toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	if toFile {
		path, err := storage.ExpandPath(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closer, nil
}

// openApp loads the config, opens the database and builds the store.
func openApp(logToFile bool) (*app, error) {
	logger, logFile, err := newLogger(logToFile)
	if err != nil {
		return nil, err
	}
	a := &app{logger: logger, logFile: logFile}

	a.cfg, err = loadConfig()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.registry = games.NewCatalog(a.cfg)

	a.db, err = storage.Open(flagDBPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	initial := store.Settings{Volume: a.cfg.Settings.Volume, Theme: core.Theme(a.cfg.Settings.Theme)}
	a.store, err = store.New(
		store.WithPersister(a.db),
		store.WithInitialSettings(initial),
		store.WithLogger(logger),
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// runtimeConfig sizes the screen from the terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if a.store != nil {
		cfg.Settings = a.store.Settings().UserSettings()
	}
	return cfg
}

// Close releases the store, the database and the log file.
// It is safe to call more than once.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
		a.store = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("closing database", "error", err)
		}
		a.db = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// mustOpenApp is openApp for commands that cannot continue without it.
func mustOpenApp(logToFile bool) *app {
	a, err := openApp(logToFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}
