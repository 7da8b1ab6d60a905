package lab

import "github.com/vovakirdan/motion-lab/internal/config"

// State is a read-only copy of the machine's state. Level-specific fields
// the active level does not own read as zero.
type State struct {
	Level        int
	Mass         float64
	Force        float64
	Velocity     float64
	Acceleration float64
	SpringForce  float64
	X, Y         float64
	Over         bool
	Ticks        int
}

// Machine is the level state machine. It is not safe for concurrent use:
// the adapter serializes Tick, Input, Reset and Advance on one goroutine.
type Machine struct {
	rules    rules
	body     Body
	level    Level
	over     bool
	terminal bool
	ticks    int
}

// New creates a machine at level 1.
func New(cfg config.LabConfig) *Machine {
	m := &Machine{
		rules: rules{arena: cfg.Arena, physics: cfg.Physics},
	}
	m.body = Body{
		Mass: cfg.Physics.Mass,
		Y:    cfg.Arena.StartY,
	}
	m.Reset(true)
	return m
}

// Reset restarts the current level, or the whole game from level 1 when full
// is set. The vertical position and mass survive either kind of reset.
func (m *Machine) Reset(full bool) {
	n := 1
	if !full && m.level != nil {
		n = m.level.Number()
	}
	m.enter(n)
}

// Advance moves to the next level. Whether the current level is finished is
// the caller's concern; only the final level refuses.
func (m *Machine) Advance() error {
	if m.level.Number() >= FinalLevel {
		return ErrAlreadyComplete
	}
	m.enter(m.level.Number() + 1)
	return nil
}

// StartAt performs a full reset and advances to level n.
func (m *Machine) StartAt(n int) error {
	if n < 1 || n > FinalLevel {
		return ErrInvalidLevel
	}
	m.Reset(true)
	for m.level.Number() < n {
		if err := m.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// enter installs a fresh level n and clears the per-level state.
func (m *Machine) enter(n int) {
	m.level = newLevel(n, m.rules)
	m.body.X = m.rules.arena.StartX
	m.body.Velocity = 0
	m.over = false
	m.terminal = false
	m.ticks = 0
}

// Input routes an arrow key to the active level. Input is accepted after the
// level is over; the next Tick applies it as usual.
func (m *Machine) Input(d Direction) error {
	if !d.valid() {
		return ErrInvalidDirection
	}
	m.level.Input(&m.body, d)
	return nil
}

// Tick advances the active level by one frame and returns what to display.
// Once a level reports its terminal condition the over flag stays set until
// the next Reset or Advance, while the rule itself keeps running.
func (m *Machine) Tick() Snapshot {
	m.ticks++
	m.terminal = m.level.Step(&m.body)
	if m.terminal {
		m.over = true
	}
	return m.Snapshot()
}

// Snapshot returns the current display values without advancing.
func (m *Machine) Snapshot() Snapshot {
	n := m.level.Number()
	fields := m.level.Readout(&m.body)
	return Snapshot{
		Level:    n,
		Name:     m.level.Name(),
		Fields:   fields,
		Label:    buildLabel(n, fields),
		X:        m.body.X,
		Y:        m.body.Y,
		Over:     m.over,
		Terminal: m.terminal,
		Complete: m.over && n == FinalLevel,
		Ticks:    m.ticks,
	}
}

// State returns a copy of the full machine state.
func (m *Machine) State() State {
	st := State{
		Level:    m.level.Number(),
		Mass:     m.body.Mass,
		Velocity: m.body.Velocity,
		X:        m.body.X,
		Y:        m.body.Y,
		Over:     m.over,
		Ticks:    m.ticks,
	}
	m.level.record(&st)
	return st
}

// Level returns the active level number.
func (m *Machine) Level() int {
	return m.level.Number()
}

// Over reports whether the active level's terminal condition has fired.
func (m *Machine) Over() bool {
	return m.over
}

// Complete reports whether the final level is over.
func (m *Machine) Complete() bool {
	return m.over && m.level.Number() == FinalLevel
}

// Arena returns the arena the machine simulates.
func (m *Machine) Arena() config.ArenaConfig {
	return m.rules.arena
}

// Reconfigure swaps in new arena and physics settings and restarts the
// current level with them.
func (m *Machine) Reconfigure(cfg config.LabConfig) {
	m.rules = rules{arena: cfg.Arena, physics: cfg.Physics}
	m.body.Mass = cfg.Physics.Mass
	m.Reset(false)
}
