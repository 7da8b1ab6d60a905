package core

import "math"

// Viewport maps arena coordinates (pixels) onto a rectangle of screen cells.
// Positions outside the arena map outside the rectangle and are clipped
// by the Screen when drawn.
type Viewport struct {
	Area           Rect    // Cells available for the arena
	ArenaW, ArenaH float64 // Arena size in pixels
}

// NewViewport creates a viewport for an arena of the given size.
func NewViewport(area Rect, arenaW, arenaH float64) Viewport {
	return Viewport{Area: area, ArenaW: arenaW, ArenaH: arenaH}
}

// Project converts an arena rectangle to screen cells. Boxes never shrink
// below one cell so they stay visible on small terminals.
func (v Viewport) Project(x, y, w, h float64) Rect {
	if v.ArenaW <= 0 || v.ArenaH <= 0 {
		return Rect{}
	}
	cols, rows := float64(v.Area.W), float64(v.Area.H)

	cx := v.Area.X + int(math.Floor(x*cols/v.ArenaW))
	cy := v.Area.Y + int(math.Floor(y*rows/v.ArenaH))
	cw := Max(1, int(math.Round(w*cols/v.ArenaW)))
	ch := Max(1, int(math.Round(h*rows/v.ArenaH)))
	return NewRect(cx, cy, cw, ch)
}
