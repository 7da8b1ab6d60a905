package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay is how long the file must stay quiet before it is reloaded.
// Editors truncate before writing, so a load on the first event would see
// an empty or partial file.
var reloadDelay = 100 * time.Millisecond

// Watch reloads path whenever it changes on disk and hands the new
// configuration to onChange. Invalid files are logged and skipped, so the
// caller keeps running with the last good configuration.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(LabConfig)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: cannot watch %s: %w", filepath.Dir(abs), err)
	}

	var (
		timer  *time.Timer
		settle <-chan time.Time // nil while no reload is pending
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			// Trailing edge: every event pushes the reload back.
			if timer == nil {
				timer = time.NewTimer(reloadDelay)
			} else {
				timer.Reset(reloadDelay)
			}
			settle = timer.C
		case <-settle:
			settle = nil
			cfg, err := LoadFile(abs)
			if err != nil {
				logger.Warn("config reload rejected", "path", abs, "error", err)
				continue
			}
			logger.Info("config reloaded", "path", abs)
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher error", "error", err)
		}
	}
}
