package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the lab configuration.
// Search order: customPath -> ~/.motionlab/configs/lab.yaml -> ./configs/lab.yaml -> embedded default
func Load(customPath string) (LabConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("lab.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", "lab.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultLabYAML)
	if err != nil {
		return DefaultLabConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and validates a single configuration file.
// Keys missing from the file keep their default values.
func LoadFile(path string) (LabConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultLabConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return DefaultLabConfig(), fmt.Errorf("config %s is empty", path)
	}
	cfg, err := parse(data)
	if err != nil {
		return DefaultLabConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (LabConfig, error) {
	cfg := DefaultLabConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first setting that would make the simulation meaningless.
func (c LabConfig) Validate() error {
	a, p := c.Arena, c.Physics
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("config: arena size must be positive, got %gx%g", a.Width, a.Height)
	case a.BoxWidth <= 0 || a.BoxHeight <= 0:
		return fmt.Errorf("config: box size must be positive, got %gx%g", a.BoxWidth, a.BoxHeight)
	case a.BoxWidth > a.Width || a.BoxHeight > a.Height:
		return fmt.Errorf("config: box %gx%g does not fit arena %gx%g", a.BoxWidth, a.BoxHeight, a.Width, a.Height)
	case a.StartX < 0 || a.StartX > a.MaxX():
		return fmt.Errorf("config: start_x %g outside [0, %g]", a.StartX, a.MaxX())
	case a.StartY < 0 || a.StartY > a.MaxY():
		return fmt.Errorf("config: start_y %g outside [0, %g]", a.StartY, a.MaxY())
	case p.Mass <= 0:
		return fmt.Errorf("config: mass must be positive, got %g", p.Mass)
	case p.FrameRate <= 0:
		return fmt.Errorf("config: frame_rate must be positive, got %g", p.FrameRate)
	case c.Display.TickRate < 0:
		return fmt.Errorf("config: tick_rate must not be negative, got %d", c.Display.TickRate)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".motionlab", "configs", filename)
}

// Locate returns the file Load would read for customPath, or empty when the
// embedded default would be used.
func Locate(customPath string) string {
	if customPath != "" {
		return customPath
	}
	candidates := []string{userConfigPath("lab.yaml"), filepath.Join("configs", "lab.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
