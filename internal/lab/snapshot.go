package lab

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one named value shown to the player.
type Field struct {
	Name      string
	Value     float64
	Unit      string
	Precision int // Digits after the point; negative prints the shortest form
}

// Format returns the value with its unit, e.g. "1.25 m/s".
func (f Field) Format() string {
	return strconv.FormatFloat(f.Value, 'f', f.Precision, 64) + " " + f.Unit
}

// String returns "Name: value unit".
func (f Field) String() string {
	return f.Name + ": " + f.Format()
}

// Snapshot is the read-only display bundle produced by every tick.
type Snapshot struct {
	Level    int
	Name     string
	Fields   []Field
	Label    string
	X, Y     float64 // Box position in arena coordinates
	Over     bool
	Terminal bool // The level's end condition held on the most recent tick
	Complete bool // Final level finished
	Ticks    int  // Ticks since the level was entered
}

// Field looks up a display field by name.
func (s Snapshot) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the numeric value of a field, or of "x", "y" or "ticks".
func (s Snapshot) Value(name string) (float64, bool) {
	switch strings.ToLower(name) {
	case "x":
		return s.X, true
	case "y":
		return s.Y, true
	case "ticks":
		return float64(s.Ticks), true
	}
	for _, f := range s.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return 0, false
}

func buildLabel(level int, fields []Field) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Level: %d", level)
	for _, f := range fields {
		sb.WriteString(" | ")
		sb.WriteString(f.String())
	}
	return sb.String()
}
