package synth

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is not positive or too large
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrInvalidScale is returned when the coordinate scale is zero or not finite
	ErrInvalidScale = errors.New("invalid coordinate scale")

	// ErrChannelRange is returned when offset ± amplitude does not fit in a byte
	ErrChannelRange = errors.New("channel range exceeds 8 bits")

	// ErrBounds is returned when a destination image does not match the pattern
	ErrBounds = errors.New("destination bounds mismatch")
)
