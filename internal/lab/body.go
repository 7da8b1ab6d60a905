package lab

// Body is the kinematic state shared by every level.
// Y is left alone by level resets; only the falling level moves it.
type Body struct {
	Mass     float64
	Velocity float64
	X        float64
	Y        float64
}
