package sim

import (
	"fmt"

	"github.com/vovakirdan/motion-lab/internal/lab"
)

// Options control a headless run.
type Options struct {
	Ticks      int  // Maximum number of ticks
	StopOnOver bool // Stop at the first tick the level reports over
}

// Trace is the result of a headless run: the snapshot before the first tick
// followed by one snapshot per tick.
type Trace struct {
	Snapshots []lab.Snapshot
}

// Final returns the last snapshot of the trace.
func (t Trace) Final() lab.Snapshot {
	if len(t.Snapshots) == 0 {
		return lab.Snapshot{}
	}
	return t.Snapshots[len(t.Snapshots)-1]
}

// Series extracts one value per snapshot for plotting.
// Accepts "x", "y", "ticks" or any display field name of the level.
func (t Trace) Series(name string) ([]float64, error) {
	out := make([]float64, 0, len(t.Snapshots))
	for _, s := range t.Snapshots {
		v, ok := s.Value(name)
		if !ok {
			return nil, fmt.Errorf("sim: level %d has no value %q", s.Level, name)
		}
		out = append(out, v)
	}
	return out, nil
}

// Run replays script against m for up to opts.Ticks ticks.
func Run(m *lab.Machine, script Script, opts Options) (Trace, error) {
	trace := Trace{Snapshots: []lab.Snapshot{m.Snapshot()}}

	next := 0
	for tick := 0; tick < opts.Ticks; tick++ {
		for next < len(script) && script[next].Tick <= tick {
			if err := m.Input(script[next].Direction); err != nil {
				return trace, err
			}
			next++
		}

		snap := m.Tick()
		trace.Snapshots = append(trace.Snapshots, snap)
		if opts.StopOnOver && snap.Over {
			break
		}
	}
	return trace, nil
}

// Start builds a machine positioned at the given level.
func Start(m *lab.Machine, level int) error {
	if err := m.StartAt(level); err != nil {
		return fmt.Errorf("sim: level %d: %w", level, err)
	}
	return nil
}
