package png

import (
	"fmt"
	stdpng "image/png"
	"strings"

	"github.com/cocosip/go-wavey/codec"
)

// Ensure Parameters implements codec.Options
var _ codec.Options = (*Parameters)(nil)

var compressionNames = map[string]stdpng.CompressionLevel{
	"default": stdpng.DefaultCompression,
	"none":    stdpng.NoCompression,
	"speed":   stdpng.BestSpeed,
	"best":    stdpng.BestCompression,
}

// Parameters contains parameters for PNG encoding
type Parameters struct {
	// Compression is the zlib effort:
	// - DefaultCompression (default)
	// - NoCompression: largest file, fastest write
	// - BestSpeed
	// - BestCompression: smallest file, slowest write
	Compression stdpng.CompressionLevel

	// KeepAlpha writes color type 6 (RGBA) even when every pixel is opaque.
	// When false the encoder may drop the alpha channel for opaque images.
	KeepAlpha bool

	// internal storage for compatibility with generic parameter interface
	params map[string]interface{}
}

// NewParameters creates Parameters with default values
func NewParameters() *Parameters {
	return &Parameters{
		Compression: stdpng.DefaultCompression,
		KeepAlpha:   true,
		params:      make(map[string]interface{}),
	}
}

// ParseCompression maps "default", "none", "speed" or "best" to a compression level
func ParseCompression(name string) (stdpng.CompressionLevel, error) {
	level, ok := compressionNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: png compression %q", codec.ErrInvalidCompressionLevel, name)
	}
	return level, nil
}

// GetParameter retrieves a parameter by name
func (p *Parameters) GetParameter(name string) interface{} {
	switch name {
	case "compression":
		return p.Compression
	case "keepAlpha":
		return p.KeepAlpha
	default:
		return p.params[name]
	}
}

// SetParameter sets a parameter value. Compression accepts a level or its name.
func (p *Parameters) SetParameter(name string, value interface{}) {
	switch name {
	case "compression":
		switch v := value.(type) {
		case stdpng.CompressionLevel:
			p.Compression = v
		case string:
			if level, err := ParseCompression(v); err == nil {
				p.Compression = level
			}
		}
	case "keepAlpha":
		if v, ok := value.(bool); ok {
			p.KeepAlpha = v
		}
	default:
		if p.params == nil {
			p.params = make(map[string]interface{})
		}
		p.params[name] = value
	}
}

// Validate checks if the parameters are valid
func (p *Parameters) Validate() error {
	switch p.Compression {
	case stdpng.DefaultCompression, stdpng.NoCompression, stdpng.BestSpeed, stdpng.BestCompression:
		return nil
	}
	return fmt.Errorf("%w: png compression %d", codec.ErrInvalidCompressionLevel, p.Compression)
}

// WithCompression sets the compression level and returns the parameters for chaining
func (p *Parameters) WithCompression(level stdpng.CompressionLevel) *Parameters {
	p.Compression = level
	return p
}

// WithKeepAlpha sets KeepAlpha and returns the parameters for chaining
func (p *Parameters) WithKeepAlpha(keep bool) *Parameters {
	p.KeepAlpha = keep
	return p
}
