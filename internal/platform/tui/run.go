package tui

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motion-lab/internal/storage"
)

// runTracker owns one row of the runs table. It is shared by pointer between
// model copies so a session can close it from outside the Bubble Tea loop.
type runTracker struct {
	mu       sync.Mutex
	store    *storage.Store
	logger   *log.Logger
	id       int64
	cleared  int
	finished bool
}

func newRunTracker(store *storage.Store, logger *log.Logger) *runTracker {
	return &runTracker{store: store, logger: logger}
}

// begin opens the run row on first use. Without a store it only counts.
func (r *runTracker) begin() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store == nil || r.id != 0 || r.finished {
		return
	}
	id, err := r.store.StartRun()
	if err != nil {
		r.logger.Warn("could not start run", "error", err)
		return
	}
	r.id = id
}

func (r *runTracker) levelCleared() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared++
}

func (r *runTracker) levelsCleared() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cleared
}

// finish closes the run once; later calls do nothing.
func (r *runTracker) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished || r.store == nil || r.id == 0 {
		return
	}
	r.finished = true

	err := r.store.FinishRun(r.id, r.cleared)
	switch {
	case err == nil:
		r.logger.Info("run finished", "run", r.id, "levels_cleared", r.cleared)
	case storage.IsNotFound(err):
		r.logger.Warn("run row missing, progress not closed", "run", r.id)
	default:
		r.logger.Error("could not finish run", "run", r.id, "error", err)
	}
}
