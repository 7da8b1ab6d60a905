package lab

import "errors"

var (
	// ErrAlreadyComplete is returned by Advance on the final level.
	ErrAlreadyComplete = errors.New("lab: already at the final level")

	// ErrInvalidDirection is returned by Input for anything but Up or Down.
	ErrInvalidDirection = errors.New("lab: invalid input direction")

	// ErrInvalidLevel is returned by StartAt for a level outside 1..FinalLevel.
	ErrInvalidLevel = errors.New("lab: invalid level")
)
