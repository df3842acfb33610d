package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry
	ErrCodecNotFound = errors.New("codec not found")

	// ErrInvalidParameter is returned when encoding/decoding parameters are invalid
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidCompressionLevel is returned when a compression level is out of range
	ErrInvalidCompressionLevel = errors.New("invalid compression level")

	// ErrUnsupportedFormat is returned when the pixel format is not supported
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSizeMismatch is returned when pixel data does not match the declared geometry
	ErrSizeMismatch = errors.New("pixel data size mismatch")
)
