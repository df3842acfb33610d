package render

import "errors"

var (
	// ErrNoOutput is returned when a job has no output path
	ErrNoOutput = errors.New("no output path")

	// ErrVerify is returned when a file does not hold the expected pattern
	ErrVerify = errors.New("verification failed")
)
