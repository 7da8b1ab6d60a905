package tui

import (
	"fmt"

	"github.com/vovakirdan/motion-lab/internal/config"
	"github.com/vovakirdan/motion-lab/internal/core"
	"github.com/vovakirdan/motion-lab/internal/lab"
)

// Layout constants
const (
	minViewWidth  = 30
	minViewHeight = 10
	arenaTop      = 2 // Rows above the arena frame: title and readout
	BoxChar       = '█'
	FloorChar     = '▀'
)

// hud carries adapter-side information drawn around the arena.
type hud struct {
	Paused    bool
	Status    string // Transient message, e.g. after a screenshot
	BestTicks int    // Fastest recorded completion of this level, 0 if none
}

// drawLab renders one snapshot into dst.
func drawLab(dst *core.Screen, snap lab.Snapshot, arena config.ArenaConfig, h hud) {
	dst.Clear()
	w, ht := dst.Width(), dst.Height()

	if w < minViewWidth || ht < minViewHeight {
		dst.DrawTextCentered(ht/2, "Terminal too small", core.ColorAccent)
		return
	}

	// Title row
	title := fmt.Sprintf(" MOTION LAB  Level %d/%d · %s", snap.Level, lab.FinalLevel, snap.Name)
	dst.DrawText(0, 0, title, core.ColorAccent)
	if h.BestTicks > 0 {
		best := fmt.Sprintf("best: %d ticks ", h.BestTicks)
		dst.DrawText(w-len(best), 0, best, core.ColorMuted)
	}

	// Readout row
	dst.DrawText(1, 1, snap.Label, core.ColorText)

	// Arena frame; the bottom edge doubles as the floor.
	frame := core.NewRect(0, arenaTop, w, ht-arenaTop-1)
	dst.DrawBox(frame, core.ColorWall)
	dst.DrawHLine(frame.X+1, frame.Bottom()-1, frame.W-2, FloorChar, core.ColorFloor)

	inner := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)
	view := core.NewViewport(inner, arena.Width, arena.Height)
	box := view.Project(snap.X, snap.Y, arena.BoxWidth, arena.BoxHeight).Clip(inner)
	dst.DrawRect(box, BoxChar, core.ColorBox)

	// Prompt row
	dst.DrawTextCentered(ht-1, promptText(snap, h), promptColor(snap, h))
}

func promptText(snap lab.Snapshot, h hud) string {
	switch {
	case h.Paused:
		return "PAUSED - press P to resume"
	case snap.Complete:
		return "Congratulations! Press 'R' to restart."
	case snap.Over:
		return "Level complete! Press N for the next level"
	case h.Status != "":
		return h.Status
	}
	return ""
}

func promptColor(snap lab.Snapshot, h hud) core.Color {
	switch {
	case h.Paused:
		return core.ColorMuted
	case snap.Complete:
		return core.ColorSuccess
	case snap.Over:
		return core.ColorAccent
	}
	return core.ColorMuted
}
