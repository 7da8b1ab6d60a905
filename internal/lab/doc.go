// Package lab implements the five-level motion lab: a single box moving
// through an arena under one simplified physics rule per level.
//
// A Machine owns all mutable state. The adapter drives it with one Tick per
// frame and Input per key press; Tick integrates with a fixed step of one
// unit per call, so the observed speed depends on how often the host calls it.
// Like core game logic elsewhere in the module, the package has no terminal
// or storage dependencies.
package lab
