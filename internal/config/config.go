// Package config provides YAML-based configuration loading for the lab:
// arena geometry, physics constants and display settings.
package config

// LabConfig contains all configuration for a lab session.
type LabConfig struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Physics PhysicsConfig `yaml:"physics"`
	Display DisplayConfig `yaml:"display"`
}

// ArenaConfig defines the simulated arena and the box that moves in it.
// Units are arena pixels, independent of the terminal size.
type ArenaConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	BoxWidth  float64 `yaml:"box_width"`
	BoxHeight float64 `yaml:"box_height"`
	StartX    float64 `yaml:"start_x"` // Restored on every level reset
	StartY    float64 `yaml:"start_y"` // Only set once, levels never reset it
}

// MaxX returns the largest x the box can occupy while fully inside the arena.
func (a ArenaConfig) MaxX() float64 {
	return a.Width - a.BoxWidth
}

// MaxY returns the largest y the box can occupy while fully inside the arena.
func (a ArenaConfig) MaxY() float64 {
	return a.Height - a.BoxHeight
}

// PhysicsConfig defines the constants used by the level rules.
type PhysicsConfig struct {
	Mass         float64 `yaml:"mass"`
	Gravity      float64 `yaml:"gravity"`
	FrameRate    float64 `yaml:"frame_rate"` // Divisor for the per-tick gravity step
	Friction     float64 `yaml:"friction"`
	EnergyHeight float64 `yaml:"energy_height"`
	ForceStep    float64 `yaml:"force_step"`
	VelocityStep float64 `yaml:"velocity_step"`
	SpringStep   float64 `yaml:"spring_step"`
}

// DisplayConfig controls the terminal adapter.
type DisplayConfig struct {
	TickRate int  `yaml:"tick_rate"`
	ShowHelp bool `yaml:"show_help"`
}
