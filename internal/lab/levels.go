package lab

// forceLevel: a constant, player-controlled force accelerates the box.
type forceLevel struct {
	rules
	force        float64
	acceleration float64
}

func (l *forceLevel) Number() int  { return 1 }
func (l *forceLevel) Name() string { return catalog[0].info.Name }

func (l *forceLevel) Input(_ *Body, d Direction) {
	switch d {
	case Up:
		l.force += l.physics.ForceStep
	case Down:
		l.force -= l.physics.ForceStep
	}
}

func (l *forceLevel) Step(b *Body) bool {
	l.acceleration = l.force / b.Mass
	b.Velocity += l.acceleration
	b.X += b.Velocity

	if b.X > l.arena.MaxX() {
		b.X = l.arena.MaxX()
		b.Velocity = 0
		return true
	}
	// Left wall stops the box without ending the level.
	if b.X < 0 {
		b.X = 0
		b.Velocity = 0
	}
	return false
}

func (l *forceLevel) Readout(b *Body) []Field {
	return []Field{
		{Name: "Force", Value: l.force, Unit: "N", Precision: -1},
		{Name: "Velocity", Value: b.Velocity, Unit: "m/s", Precision: 2},
		{Name: "Acceleration", Value: l.acceleration, Unit: "m/s²", Precision: 2},
	}
}

func (l *forceLevel) record(st *State) {
	st.Force = l.force
	st.Acceleration = l.acceleration
}

// momentumLevel: the box coasts; momentum is reported but never fed back.
type momentumLevel struct {
	rules
}

func (l *momentumLevel) Number() int  { return 2 }
func (l *momentumLevel) Name() string { return catalog[1].info.Name }

func (l *momentumLevel) Input(b *Body, d Direction) {
	switch d {
	case Up:
		b.Velocity += l.physics.VelocityStep
	case Down:
		b.Velocity -= l.physics.VelocityStep
	}
}

func (l *momentumLevel) Step(b *Body) bool {
	b.X += b.Velocity
	return b.X > l.arena.MaxX()
}

func (l *momentumLevel) Readout(b *Body) []Field {
	return []Field{
		{Name: "Momentum", Value: b.Mass * b.Velocity, Unit: "kg·m/s", Precision: 2},
		{Name: "Velocity", Value: b.Velocity, Unit: "m/s", Precision: 2},
	}
}

func (l *momentumLevel) record(*State) {}

// springLevel: stored spring force is released into velocity one unit per tick.
// The potential energy uses a fixed reference height, not the box position.
type springLevel struct {
	rules
	springForce float64
	kinetic     float64 // Sampled before the spring acts
}

func (l *springLevel) Number() int  { return 3 }
func (l *springLevel) Name() string { return catalog[2].info.Name }

func (l *springLevel) Input(_ *Body, d Direction) {
	if d == Up {
		l.springForce += l.physics.SpringStep
	}
}

func (l *springLevel) Step(b *Body) bool {
	l.kinetic = 0.5 * b.Mass * b.Velocity * b.Velocity
	if l.springForce > 0 {
		b.Velocity += l.springForce
		b.X += b.Velocity
		l.springForce--
	}
	return b.X > l.arena.MaxX()
}

func (l *springLevel) Readout(b *Body) []Field {
	return []Field{
		{Name: "KE", Value: l.kinetic, Unit: "J", Precision: 2},
		{Name: "PE", Value: b.Mass * l.physics.Gravity * l.physics.EnergyHeight, Unit: "J", Precision: 2},
	}
}

func (l *springLevel) record(st *State) {
	st.SpringForce = l.springForce
}

// frictionLevel: a constant friction force decelerates a moving box.
type frictionLevel struct {
	rules
}

func (l *frictionLevel) Number() int  { return 4 }
func (l *frictionLevel) Name() string { return catalog[3].info.Name }

func (l *frictionLevel) Input(b *Body, d Direction) {
	switch d {
	case Up:
		b.Velocity += l.physics.VelocityStep
	case Down:
		b.Velocity -= l.physics.VelocityStep
	}
}

func (l *frictionLevel) Step(b *Body) bool {
	if b.Velocity > 0 {
		b.Velocity -= l.physics.Friction / b.Mass
		b.X += b.Velocity
	}
	return b.Velocity <= 0
}

func (l *frictionLevel) Readout(b *Body) []Field {
	return []Field{
		{Name: "Friction Force", Value: l.physics.Friction, Unit: "N", Precision: -1},
		{Name: "Velocity", Value: b.Velocity, Unit: "m/s", Precision: 2},
	}
}

func (l *frictionLevel) record(*State) {}

// fallLevel: gravity accelerates the box downward until it lands.
type fallLevel struct {
	rules
}

func (l *fallLevel) Number() int  { return 5 }
func (l *fallLevel) Name() string { return catalog[4].info.Name }

func (l *fallLevel) Input(b *Body, d Direction) {
	if d == Up {
		b.Velocity += l.physics.VelocityStep
	}
}

func (l *fallLevel) Step(b *Body) bool {
	if b.Y < l.arena.MaxY() {
		b.Velocity += l.physics.Gravity / l.physics.FrameRate
		b.Y += b.Velocity
		return false
	}
	b.Velocity = 0
	return true
}

func (l *fallLevel) Readout(b *Body) []Field {
	return []Field{
		{Name: "Height", Value: l.arena.Height - b.Y - l.arena.BoxHeight, Unit: "m", Precision: 2},
		{Name: "Velocity", Value: b.Velocity, Unit: "m/s", Precision: 2},
	}
}

func (l *fallLevel) record(*State) {}
