package core

// Color is a foreground color for a screen cell.
// The platform maps it to ANSI 256-color codes.
type Color uint8

// Palette used by the lab view.
const (
	ColorDefault Color = iota
	ColorBox
	ColorWall
	ColorFloor
	ColorText
	ColorAccent
	ColorSuccess
	ColorMuted
)
