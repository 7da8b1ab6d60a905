package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultLabConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultLabConfig())
	}
}

func TestArenaBounds(t *testing.T) {
	a := DefaultLabConfig().Arena
	if a.MaxX() != 680 {
		t.Errorf("MaxX() = %g, expected 680", a.MaxX())
	}
	if a.MaxY() != 480 {
		t.Errorf("MaxY() = %g, expected 480", a.MaxY())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	data := []byte("physics:\n  mass: 25\n  friction: 10\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Mass != 25 {
		t.Errorf("Mass = %g, expected 25", cfg.Physics.Mass)
	}
	if cfg.Physics.Friction != 10 {
		t.Errorf("Friction = %g, expected 10", cfg.Physics.Friction)
	}
	// Unset keys keep their defaults
	if cfg.Arena.Width != 800 {
		t.Errorf("Arena.Width = %g, expected default 800", cfg.Arena.Width)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  mass: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load() should reject zero mass")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("\n  \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("Load() should reject an empty file instead of using defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LabConfig)
		ok     bool
	}{
		{"defaults", func(*LabConfig) {}, true},
		{"zero mass", func(c *LabConfig) { c.Physics.Mass = 0 }, false},
		{"negative frame rate", func(c *LabConfig) { c.Physics.FrameRate = -1 }, false},
		{"zero arena", func(c *LabConfig) { c.Arena.Width = 0 }, false},
		{"box wider than arena", func(c *LabConfig) { c.Arena.BoxWidth = 900 }, false},
		{"start past right edge", func(c *LabConfig) { c.Arena.StartX = 700 }, false},
		{"start below floor", func(c *LabConfig) { c.Arena.StartY = 500 }, false},
		{"negative tick rate", func(c *LabConfig) { c.Display.TickRate = -5 }, false},
		{"start at right edge", func(c *LabConfig) { c.Arena.StartX = 680 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultLabConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

// startWatch runs Watch on path in the background and collects every
// delivered config until the test ends.
func startWatch(t *testing.T, path string) <-chan LabConfig {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan LabConfig, 64)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, log.New(io.Discard), func(cfg LabConfig) {
			got <- cfg
		})
	}()

	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Watch() returned %v", err)
		}
	})
	return got
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	if err := os.WriteFile(path, DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}
	got := startWatch(t, path)

	// Rewrite until the watcher has registered and delivered a reload.
	// The gap between writes is longer than the settle delay.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(4 * reloadDelay)
	defer tick.Stop()

	for {
		select {
		case cfg := <-got:
			if cfg.Physics.Mass != 10 {
				t.Errorf("reloaded Mass = %g, expected 10", cfg.Physics.Mass)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path, []byte("physics:\n  mass: 10\n"), 0o600); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestWatchNeverDeliversPartialWrites(t *testing.T) {
	content := []byte("physics:\n  mass: 10\n")
	path := filepath.Join(t.TempDir(), "lab.yaml")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	got := startWatch(t, path)

	// Each os.WriteFile truncates first, so a reload taken mid-burst would
	// see an empty file and fall back to the default mass.
	burst := func() {
		for i := 0; i < 50; i++ {
			if err := os.WriteFile(path, content, 0o600); err != nil {
				t.Fatal(err)
			}
		}
	}

	var masses []float64
	deadline := time.After(5 * time.Second)
	for len(masses) == 0 {
		burst()
		select {
		case cfg := <-got:
			masses = append(masses, cfg.Physics.Mass)
		case <-time.After(5 * reloadDelay):
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
		}
	}

	// Drain anything else the bursts produced.
	quiet := time.After(5 * reloadDelay)
drain:
	for {
		select {
		case cfg := <-got:
			masses = append(masses, cfg.Physics.Mass)
		case <-quiet:
			break drain
		}
	}

	for i, m := range masses {
		if m != 10 {
			t.Errorf("reload %d delivered Mass = %g, expected 10 (all: %v)", i, m, masses)
		}
	}
}

func TestLocateCustomPath(t *testing.T) {
	if got := Locate("/tmp/custom.yaml"); got != "/tmp/custom.yaml" {
		t.Errorf("Locate() = %q, expected custom path", got)
	}
}
