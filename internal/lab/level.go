package lab

import "github.com/vovakirdan/motion-lab/internal/config"

// FinalLevel is the last level; there is nothing to advance to after it.
const FinalLevel = 5

// Level is one physics scenario. Each implementation keeps only the state its
// rule needs; the shared Body is passed in by the Machine.
type Level interface {
	// Number returns the 1-based level index.
	Number() int

	// Name returns a short title for menus and the HUD.
	Name() string

	// Input applies the level's response to an arrow key.
	Input(b *Body, d Direction)

	// Step advances the rule by one tick and reports whether the level's
	// terminal condition held on this tick.
	Step(b *Body) bool

	// Readout returns the values displayed for this level.
	Readout(b *Body) []Field

	record(st *State)
}

// rules is the read-only configuration every level is built with.
type rules struct {
	arena   config.ArenaConfig
	physics config.PhysicsConfig
}

// LevelInfo describes a level for menus and the CLI.
type LevelInfo struct {
	Number   int
	Name     string
	Summary  string
	Controls string
}

var catalog = []struct {
	info  LevelInfo
	build func(r rules) Level
}{
	{
		info: LevelInfo{1, "Uniform Force",
			"a = F/m; push the box until it reaches the wall",
			"Up/Down: force ±5 N"},
		build: func(r rules) Level { return &forceLevel{rules: r} },
	},
	{
		info: LevelInfo{2, "Momentum",
			"p = m·v; the box coasts at whatever speed you give it",
			"Up/Down: velocity ±5 m/s"},
		build: func(r rules) Level { return &momentumLevel{rules: r} },
	},
	{
		info: LevelInfo{3, "Spring Energy",
			"compressed spring releases into kinetic energy",
			"Up: spring +1"},
		build: func(r rules) Level { return &springLevel{rules: r} },
	},
	{
		info: LevelInfo{4, "Friction",
			"friction bleeds velocity until the box stops",
			"Up/Down: velocity ±5 m/s"},
		build: func(r rules) Level { return &frictionLevel{rules: r} },
	},
	{
		info: LevelInfo{5, "Free Fall",
			"gravity pulls the box to the floor",
			"Up: velocity +5 m/s"},
		build: func(r rules) Level { return &fallLevel{rules: r} },
	},
}

// Levels returns information about every level in order.
func Levels() []LevelInfo {
	out := make([]LevelInfo, len(catalog))
	for i, c := range catalog {
		out[i] = c.info
	}
	return out
}

func newLevel(n int, r rules) Level {
	return catalog[n-1].build(r)
}
