package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/core"
	"github.com/vovakirdan/motion-lab/internal/lab"
	"github.com/vovakirdan/motion-lab/internal/storage"
)

var testRuntime = core.RuntimeConfig{ScreenW: 82, ScreenH: 35, TickRate: 60}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, level int, store *storage.Store) Model {
	t.Helper()
	m := lab.New(config.DefaultLabConfig())
	if err := m.StartAt(level); err != nil {
		t.Fatalf("StartAt(%d) failed: %v", level, err)
	}
	return NewModel(m, store, nil, testRuntime, false)
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send feeds msg through Update and returns the resulting model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, TickMsg(time.Now()))
	return m
}

func TestModelAppliesQueuedInputOnTick(t *testing.T) {
	m := newTestModel(t, 1, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, runes("w"))

	// Nothing happens until the next tick.
	if got := m.Snapshot().Ticks; got != 0 {
		t.Fatalf("expected no ticks before TickMsg, got %d", got)
	}

	m = tick(t, m)
	want := "Level: 1 | Force: 10 N | Velocity: 0.20 m/s | Acceleration: 0.20 m/s²"
	if got := m.Snapshot().Label; got != want {
		t.Errorf("label = %q, want %q", got, want)
	}
}

func TestModelNextIgnoredUntilOver(t *testing.T) {
	m := newTestModel(t, 1, nil)

	m, _ = send(t, m, runes("n"))
	m = tick(t, m)

	if got := m.Snapshot().Level; got != 1 {
		t.Errorf("expected to stay on level 1, got %d", got)
	}
}

func TestModelRecordsCompletionAndAdvances(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(t, 4, store)

	// One push of 5 m/s loses 0.4 m/s per tick to friction.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	for i := 0; i < 100 && !m.Snapshot().Over; i++ {
		m = tick(t, m)
	}
	if !m.Snapshot().Over {
		t.Fatal("expected the box to stop")
	}

	best, err := store.BestTicks(4)
	if err != nil {
		t.Fatalf("BestTicks failed: %v", err)
	}
	if best != 13 {
		t.Errorf("expected best of 13 ticks, got %d", best)
	}

	// Further ticks must not record the same attempt again.
	m = tick(t, m)
	completions, err := store.FastestCompletions(4, 10)
	if err != nil {
		t.Fatalf("FastestCompletions failed: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("expected 1 completion, got %d", len(completions))
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(t, m)
	if got := m.Snapshot().Level; got != 5 {
		t.Errorf("expected level 5 after next, got %d", got)
	}
	if m.Cleared() != 1 {
		t.Errorf("expected 1 cleared level, got %d", m.Cleared())
	}
}

func TestModelSkipsCompletionWithoutMotion(t *testing.T) {
	store := openTestStore(t)
	// A resting body on the friction level is over on its first tick.
	m := newTestModel(t, 4, store)

	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}
	if !m.Snapshot().Over {
		t.Fatal("expected level 4 to be over from rest")
	}
	if m.Cleared() != 1 {
		t.Errorf("expected the level to count as cleared, got %d", m.Cleared())
	}

	completions, err := store.FastestCompletions(4, 10)
	if err != nil {
		t.Fatalf("FastestCompletions failed: %v", err)
	}
	if len(completions) != 0 {
		t.Errorf("expected no completion for a box that never moved, got %+v", completions)
	}
}

func TestModelNextRefusedOnFinalLevel(t *testing.T) {
	m := newTestModel(t, 5, nil)
	for i := 0; i < 200 && !m.Snapshot().Over; i++ {
		m = tick(t, m)
	}
	if !m.Snapshot().Complete {
		t.Fatal("expected the free fall to land")
	}

	m, _ = send(t, m, runes("n"))
	m = tick(t, m)
	if got := m.Snapshot().Level; got != 5 {
		t.Errorf("expected to stay on level 5, got %d", got)
	}

	m, _ = send(t, m, runes("r"))
	m = tick(t, m)
	if got := m.Snapshot().Level; got != 1 {
		t.Errorf("expected restart to level 1, got %d", got)
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t, 1, nil)

	m = tick(t, m)
	m, _ = send(t, m, runes("p"))
	m = tick(t, m)
	m = tick(t, m)

	if got := m.Snapshot().Ticks; got != 1 {
		t.Errorf("expected ticks to stop at 1 while paused, got %d", got)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused prompt in view")
	}

	m, _ = send(t, m, runes("p"))
	m = tick(t, m)
	if got := m.Snapshot().Ticks; got != 2 {
		t.Errorf("expected ticks to resume, got %d", got)
	}
}

func TestModelQuitFinishesRun(t *testing.T) {
	store := openTestStore(t)
	m := newTestModel(t, 4, store)
	m = tick(t, m)

	m, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}

	runs, err := store.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].LevelsCleared != 1 {
		t.Errorf("expected 1 level cleared, got %d", runs[0].LevelsCleared)
	}
	if runs[0].FinishedAt.IsZero() {
		t.Error("expected run to be finished")
	}
}

func TestModelConfigReload(t *testing.T) {
	m := newTestModel(t, 1, nil)

	cfg := config.DefaultLabConfig()
	cfg.Physics.Mass = 10
	m, _ = send(t, m, ConfigReloadedMsg{Config: cfg})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = tick(t, m)

	v, _ := m.Snapshot().Value("Velocity")
	if v != 0.5 {
		t.Errorf("expected velocity 0.5 with mass 10, got %v", v)
	}
}

func TestModelConfigReloadTickRate(t *testing.T) {
	tests := []struct {
		name string
		rate int
		want int
	}{
		{"applied", 30, 30},
		{"zero keeps current", 0, testRuntime.TickRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, 1, nil)
			cfg := config.DefaultLabConfig()
			cfg.Display.TickRate = tc.rate

			m, _ = send(t, m, ConfigReloadedMsg{Config: cfg})
			if m.config.TickRate != tc.want {
				t.Errorf("tick rate = %d, want %d", m.config.TickRate, tc.want)
			}
		})
	}
}

func TestModelWindowResize(t *testing.T) {
	m := newTestModel(t, 1, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 100x40", m.screen.Width(), m.screen.Height())
	}
}
