package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/core"
)

func TestProgressBoardCyclesLevels(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveCompletion(1, 42, 3.5); err != nil {
		t.Fatalf("SaveCompletion failed: %v", err)
	}

	m := NewProgressModel(store, 100, 30)
	if !strings.Contains(m.View(), "Level 1: Uniform Force") {
		t.Errorf("expected level 1 title, got %q", m.View())
	}
	if len(m.completions) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(m.completions))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ProgressModel)
	if m.Level() != 2 {
		t.Errorf("expected level 2 after tab, got %d", m.Level())
	}
	if !strings.Contains(m.View(), "No completions recorded yet") {
		t.Error("expected empty message for level 2")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := next.(ProgressModel).Level(); got != 5 {
		t.Errorf("expected wrap to level 5, got %d", got)
	}
}

func TestProgressBoardWithoutStore(t *testing.T) {
	m := NewProgressModel(nil, 60, 20)
	if !strings.Contains(m.View(), "storage is disabled") {
		t.Errorf("unexpected view: %q", m.View())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || !next.(ProgressModel).IsGoingBack() {
		t.Error("expected esc to go back")
	}
}

func TestSessionStartsSelectedLevel(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 82, ScreenH: 35, TickRate: 60}
	var s tea.Model = NewSessionModel(nil, config.DefaultLabConfig(), cfg, nil)

	s, _ = s.Update(runes("3"))
	session := s.(SessionModel)
	if session.lab == nil {
		t.Fatal("expected lab to start after selecting a level")
	}
	if session.quitting {
		t.Fatal("selecting a level must not end the session")
	}
	if got := session.lab.Snapshot().Level; got != 3 {
		t.Errorf("expected level 3, got %d", got)
	}

	// Screenshots are disabled for remote sessions.
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("expected screenshot key to be ignored")
	}

	_, cmd = s.Update(runes("q"))
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestSessionProgressBoard(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 82, ScreenH: 35, TickRate: 60}
	var s tea.Model = NewSessionModel(nil, config.DefaultLabConfig(), cfg, nil)

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s.(SessionModel).board == nil {
		t.Fatal("expected progress board after tab")
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	session := s.(SessionModel)
	if session.board != nil || session.quitting {
		t.Error("expected esc to return to the level picker")
	}
	if !strings.Contains(session.View(), "Select a level") {
		t.Error("expected level picker view")
	}
}

func TestSessionCloseFinishesRun(t *testing.T) {
	store := openTestStore(t)
	cfg := core.RuntimeConfig{ScreenW: 82, ScreenH: 35, TickRate: 60}
	initial := NewSessionModel(store, config.DefaultLabConfig(), cfg, nil)

	// Browsing the picker does not open a run.
	initial.Close()
	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs before a level starts, got %d", len(runs))
	}

	var s tea.Model = initial
	s, _ = s.Update(runes("4"))
	s, _ = s.Update(TickMsg(time.Now()))
	if !s.(SessionModel).lab.Snapshot().Over {
		t.Fatal("expected level 4 to be over from rest")
	}

	// The connection drops: the handler only holds the first copy.
	initial.Close()
	initial.Close()

	runs, err = store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].FinishedAt.IsZero() {
		t.Error("expected the run to be finished on close")
	}
	if runs[0].LevelsCleared != 1 {
		t.Errorf("expected 1 level cleared, got %d", runs[0].LevelsCleared)
	}

	// A later quit must not open or rewrite anything.
	s.Update(runes("q"))
	again, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(again) != 1 || !again[0].FinishedAt.Equal(runs[0].FinishedAt) {
		t.Errorf("expected the run to stay as closed, got %+v", again)
	}
}
