package tiff

import (
	"fmt"
	"strings"

	"github.com/cocosip/go-wavey/codec"
	xtiff "golang.org/x/image/tiff"
)

// Ensure Parameters implements codec.Options
var _ codec.Options = (*Parameters)(nil)

// Parameters contains parameters for TIFF encoding
type Parameters struct {
	// Compression is either xtiff.Uncompressed (default) or xtiff.Deflate
	Compression xtiff.CompressionType

	// Predictor enables horizontal differencing, which helps Deflate on smooth gradients
	Predictor bool
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{Compression: xtiff.Uncompressed}
}

// ParseCompression maps "none" or "deflate" to a compression type
func ParseCompression(name string) (xtiff.CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "none", "default":
		return xtiff.Uncompressed, nil
	case "deflate", "best":
		return xtiff.Deflate, nil
	}
	return 0, fmt.Errorf("%w: tiff compression %q", codec.ErrInvalidCompressionLevel, name)
}

// Validate checks if the parameters are valid
func (p *Parameters) Validate() error {
	if p.Compression != xtiff.Uncompressed && p.Compression != xtiff.Deflate {
		return fmt.Errorf("%w: tiff compression %d", codec.ErrInvalidCompressionLevel, p.Compression)
	}
	return nil
}

// WithCompression sets the compression and returns the parameters for chaining
func (p *Parameters) WithCompression(c xtiff.CompressionType) *Parameters {
	p.Compression = c
	return p
}

// WithPredictor enables the horizontal predictor
func (p *Parameters) WithPredictor(on bool) *Parameters {
	p.Predictor = on
	return p
}

func (p *Parameters) options() *xtiff.Options {
	return &xtiff.Options{Compression: p.Compression, Predictor: p.Predictor}
}
