package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/core"
	"github.com/vovakirdan/motion-lab/internal/storage"
)

// logPath resolves the log file, preferring --log-file over the XDG state directory.
func logPath() (string, error) {
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return "", fmt.Errorf("could not create log directory: %w", err)
		}
		return flagLogFile, nil
	}
	path, err := xdg.StateFile("motionlab/motionlab.log")
	if err != nil {
		return "", fmt.Errorf("could not get log path: %w", err)
	}
	return path, nil
}

// openLogger opens the file-backed logger used while the TUI owns the terminal.
// The returned closer is never nil.
func openLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown log level %q, using info\n", flagLogLevel)
		level = log.InfoLevel
	}

	path, err := logPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; logging disabled\n", err)
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v; logging disabled\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "motionlab",
	})
	return logger, func() { _ = f.Close() }
}

// loadLabConfig loads the lab configuration or exits.
func loadLabConfig() config.LabConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig sizes the screen from the terminal and picks the tick rate.
func runtimeConfig(cfg config.LabConfig) core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if cfg.Display.TickRate > 0 {
		rc.TickRate = cfg.Display.TickRate
	}
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	return rc
}

// openStore opens the progress database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		return nil
	}
	return store
}
