package lab

// Direction is the only input a level understands.
type Direction int

const (
	Up Direction = iota + 1
	Down
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "invalid"
	}
}

// ParseDirection converts "up" or "down" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return 0, ErrInvalidDirection
}

func (d Direction) valid() bool {
	return d == Up || d == Down
}
