// Package png implements the PNG codec. It is the default output format.
package png

import (
	"fmt"
	"image"
	stdpng "image/png"
	"io"
	"sync"

	"github.com/cocosip/go-wavey/codec"
)

// Codec implements the codec.Codec interface for PNG
type Codec struct {
	pool bufferPool
}

// NewCodec creates a new PNG codec
func NewCodec() *Codec {
	return &Codec{}
}

// Encode writes the pixels as an 8-bit PNG
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

	enc := stdpng.Encoder{
		CompressionLevel: opts.Compression,
		BufferPool:       &c.pool,
	}

	var img image.Image = params.Image()
	if opts.KeepAlpha {
		img = translucent{params.Image()}
	}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	return nil
}

// Decode decodes a PNG stream into RGBA pixels
func (c *Codec) Decode(r io.Reader) (*codec.DecodeResult, error) {
	img, err := stdpng.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("png decode failed: %w", err)
	}
	return codec.NewDecodeResult(img), nil
}

// UID returns the PNG media type
func (c *Codec) UID() string {
	return "image/png"
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return "png"
}

// Extensions returns the PNG file extension
func (c *Codec) Extensions() []string {
	return []string{".png"}
}

// translucent hides Opaque from the encoder, which would otherwise
// downgrade an all-opaque image to color type 2 (RGB).
type translucent struct {
	*image.RGBA
}

func (translucent) Opaque() bool { return false }

// bufferPool reuses zlib encoder state across Encode calls
type bufferPool struct {
	p sync.Pool
}

func (b *bufferPool) Get() *stdpng.EncoderBuffer {
	buf, _ := b.p.Get().(*stdpng.EncoderBuffer)
	return buf
}

func (b *bufferPool) Put(buf *stdpng.EncoderBuffer) {
	b.p.Put(buf)
}

// Register registers this codec with the global registry
func init() {
	codec.Register(NewCodec())
}
