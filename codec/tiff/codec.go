// Package tiff implements the TIFF codec on top of golang.org/x/image/tiff.
package tiff

import (
	"fmt"
	"io"

	"github.com/cocosip/go-wavey/codec"
	xtiff "golang.org/x/image/tiff"
)

// Codec implements the codec.Codec interface for TIFF
type Codec struct{}

// NewCodec creates a new TIFF codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode writes the pixels as a single-strip RGBA TIFF
func (c *Codec) Encode(w io.Writer, params codec.EncodeParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	opts := NewParameters()
	if params.Options != nil {
		if p, ok := params.Options.(*Parameters); ok {
			opts = p
		}
	}

	if err := xtiff.Encode(w, params.Image(), opts.options()); err != nil {
		return fmt.Errorf("tiff encode failed: %w", err)
	}
	return nil
}

// Decode decodes a TIFF stream into RGBA pixels
func (c *Codec) Decode(r io.Reader) (*codec.DecodeResult, error) {
	img, err := xtiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("tiff decode failed: %w", err)
	}
	return codec.NewDecodeResult(img), nil
}

// UID returns the TIFF media type
func (c *Codec) UID() string {
	return "image/tiff"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "tiff"
}

// Extensions returns the TIFF file extensions
func (c *Codec) Extensions() []string {
	return []string{".tif", ".tiff"}
}

func init() {
	codec.Register(NewCodec())
}
