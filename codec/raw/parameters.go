package raw

import (
	"fmt"

	"github.com/cocosip/go-wavey/codec"
	"github.com/klauspost/compress/zstd"
)

// Ensure Parameters implements codec.Options
var _ codec.Options = (*Parameters)(nil)

// Parameters contains parameters for the zstd-compressed raw codec.
// The uncompressed codec ignores them.
type Parameters struct {
	// Level is the zstd encoder level, zstd.SpeedDefault unless set
	Level zstd.EncoderLevel

	// Concurrency bounds the zstd encoder goroutines; 0 uses GOMAXPROCS
	Concurrency int
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{Level: zstd.SpeedDefault}
}

// ParseLevel maps a zstd level name ("fastest", "default", "better", "best")
func ParseLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return zstd.SpeedDefault, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("%w: zstd level %q", codec.ErrInvalidCompressionLevel, name)
	}
	return level, nil
}

// Validate checks if the parameters are valid
func (p *Parameters) Validate() error {
	if p.Level < zstd.SpeedFastest || p.Level > zstd.SpeedBestCompression {
		return fmt.Errorf("%w: zstd level %d", codec.ErrInvalidCompressionLevel, p.Level)
	}
	if p.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency %d", codec.ErrInvalidParameter, p.Concurrency)
	}
	return nil
}

// WithLevel sets the encoder level and returns the parameters for chaining
func (p *Parameters) WithLevel(level zstd.EncoderLevel) *Parameters {
	p.Level = level
	return p
}

// WithConcurrency sets the encoder concurrency and returns the parameters for chaining
func (p *Parameters) WithConcurrency(n int) *Parameters {
	p.Concurrency = n
	return p
}
