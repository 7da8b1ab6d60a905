package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreFastestCompletions(t *testing.T) {
	store := openTestStore(t)

	for _, ticks := range []int{120, 45, 300} {
		if _, err := store.SaveCompletion(1, ticks, 12.5); err != nil {
			t.Fatalf("SaveCompletion() failed: %v", err)
		}
	}
	if _, err := store.SaveCompletion(2, 10, 600); err != nil {
		t.Fatalf("SaveCompletion() failed: %v", err)
	}

	got, err := store.FastestCompletions(1, 10)
	if err != nil {
		t.Fatalf("FastestCompletions() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(got))
	}
	if got[0].Ticks != 45 || got[1].Ticks != 120 || got[2].Ticks != 300 {
		t.Errorf("completions not in ascending order: %+v", got)
	}
	if got[0].PeakVelocity != 12.5 || got[0].Level != 1 {
		t.Errorf("unexpected first completion: %+v", got[0])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	level2, err := store.FastestCompletions(2, 10)
	if err != nil {
		t.Fatalf("FastestCompletions() failed: %v", err)
	}
	if len(level2) != 1 {
		t.Errorf("expected 1 level 2 completion, got %d", len(level2))
	}
}

func TestStoreFastestCompletionsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveCompletion(3, (i+1)*100, 0)
	}

	got, err := store.FastestCompletions(3, 2)
	if err != nil {
		t.Fatalf("FastestCompletions() failed: %v", err)
	}
	if len(got) != 2 || got[0].Ticks != 100 || got[1].Ticks != 200 {
		t.Errorf("unexpected limited result: %+v", got)
	}
}

func TestStoreBestTicks(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestTicks(4)
	if err != nil {
		t.Fatalf("BestTicks() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("expected 0 for a level never completed, got %d", best)
	}

	store.SaveCompletion(4, 80, 0)
	store.SaveCompletion(4, 51, 0)

	best, err = store.BestTicks(4)
	if err != nil {
		t.Fatalf("BestTicks() failed: %v", err)
	}
	if best != 51 {
		t.Errorf("expected best of 51 ticks, got %d", best)
	}
}

func TestStoreClearCompletions(t *testing.T) {
	store := openTestStore(t)

	store.SaveCompletion(1, 10, 0)
	store.SaveCompletion(2, 20, 0)

	if err := store.ClearCompletions(1); err != nil {
		t.Fatalf("ClearCompletions() failed: %v", err)
	}

	if got, _ := store.FastestCompletions(1, 10); len(got) != 0 {
		t.Errorf("expected no level 1 completions after clear, got %d", len(got))
	}
	if got, _ := store.FastestCompletions(2, 10); len(got) != 1 {
		t.Error("level 2 completions should not be affected by clearing level 1")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	first, err := store.StartRun()
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}
	second, err := store.StartRun()
	if err != nil {
		t.Fatalf("StartRun() failed: %v", err)
	}

	if err := store.FinishRun(first, 5); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("runs not newest first: %+v", runs)
	}
	if runs[1].LevelsCleared != 5 || runs[1].FinishedAt.IsZero() {
		t.Errorf("finished run not recorded: %+v", runs[1])
	}
	if !runs[0].FinishedAt.IsZero() {
		t.Errorf("open run should have no finish time: %+v", runs[0])
	}
}

func TestStoreFinishUnknownRun(t *testing.T) {
	store := openTestStore(t)

	err := store.FinishRun(42, 1)
	if !IsNotFound(err) {
		t.Errorf("FinishRun() on unknown run = %v, expected not found", err)
	}
}
