// Package bmp implements the Windows bitmap codec on top of golang.org/x/image/bmp.
// Opaque images are stored as 24-bit, anything with transparency as 32-bit.
package bmp

import (
	"fmt"
	"io"

	"github.com/cocosip/go-wavey/codec"
	xbmp "golang.org/x/image/bmp"
)

// Codec implements the codec.Codec interface for BMP
type Codec struct{}

// NewCodec creates a new BMP codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode writes the pixels as an uncompressed bitmap
func (c *Codec) Encode(w io.Writer, params codec.EncodeParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := xbmp.Encode(w, params.Image()); err != nil {
		return fmt.Errorf("bmp encode failed: %w", err)
	}
	return nil
}

// Decode decodes a bitmap into RGBA pixels
func (c *Codec) Decode(r io.Reader) (*codec.DecodeResult, error) {
	img, err := xbmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bmp decode failed: %w", err)
	}
	return codec.NewDecodeResult(img), nil
}

// UID returns the BMP media type
func (c *Codec) UID() string {
	return "image/bmp"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "bmp"
}

// Extensions returns the BMP file extension
func (c *Codec) Extensions() []string {
	return []string{".bmp"}
}

func init() {
	codec.Register(NewCodec())
}
