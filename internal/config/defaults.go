package config

import (
	_ "embed"
)

//go:embed defaults/lab.yaml
var defaultLabYAML []byte

// DefaultLabConfig returns the default lab configuration.
func DefaultLabConfig() LabConfig {
	return LabConfig{
		Arena: ArenaConfig{
			Width:     800,
			Height:    600,
			BoxWidth:  120,
			BoxHeight: 120,
			StartX:    100,
			StartY:    160,
		},
		Physics: PhysicsConfig{
			Mass:         50,
			Gravity:      9.81,
			FrameRate:    60,
			Friction:     20,
			EnergyHeight: 100,
			ForceStep:    5,
			VelocityStep: 5,
			SpringStep:   1,
		},
		Display: DisplayConfig{
			TickRate: 60,
			ShowHelp: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLabYAML
}
