package codec

import (
	"fmt"
	"image"
	"io"
)

// Codec is the universal interface for all raster file codecs
type Codec interface {
	// Encode writes pixel data to w in the codec's file format
	Encode(w io.Writer, params EncodeParams) error

	// Decode reads a complete image from r
	Decode(r io.Reader) (*DecodeResult, error)

	// UID returns the unique identifier (a media type or a DICOM Transfer Syntax UID)
	UID() string

	// Name returns a human-readable name
	Name() string

	// Extensions returns the file extensions handled by this codec, with leading dot
	Extensions() []string
}

// EncodeParams contains parameters for encoding
type EncodeParams struct {
	PixelData  []byte  // Raw interleaved pixel data, row-major, no padding
	Width      int     // Image width
	Height     int     // Image height
	Components int     // Number of color components (4=RGBA)
	BitDepth   int     // Bits per sample
	Options    Options // Codec-specific options
}

// Validate checks the geometry against the pixel data length.
// The bundled codecs only handle 8-bit RGBA.
func (p EncodeParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidParameter, p.Width, p.Height)
	}
	if p.Components != 4 || p.BitDepth != 8 {
		return fmt.Errorf("%w: %d components at %d bits", ErrUnsupportedFormat, p.Components, p.BitDepth)
	}
	expected := p.Width * p.Height * p.Components * p.BitDepth / 8
	if len(p.PixelData) != expected {
		return fmt.Errorf("%w: expected %d bytes for %dx%d RGBA, got %d",
			ErrSizeMismatch, expected, p.Width, p.Height, len(p.PixelData))
	}
	if p.Options != nil {
		if err := p.Options.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Image wraps the pixel data as an *image.RGBA without copying
func (p EncodeParams) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.PixelData,
		Stride: p.Width * 4,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

// NewEncodeParams describes an 8-bit RGBA image for encoding.
// img must have a tight stride (as returned by image.NewRGBA).
func NewEncodeParams(img *image.RGBA, opts Options) EncodeParams {
	b := img.Bounds()
	return EncodeParams{
		PixelData:  img.Pix,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Components: 4,
		BitDepth:   8,
		Options:    opts,
	}
}

// Options is an interface for codec-specific encoding options
type Options interface {
	// Validate checks if the options are valid
	Validate() error
}

// DecodeResult contains the result of decoding
type DecodeResult struct {
	PixelData  []byte // Decoded pixel data, RGBA interleaved
	Width      int    // Image width
	Height     int    // Image height
	Components int    // Number of color components
	BitDepth   int    // Bits per sample
}

// NewDecodeResult converts any decoded image to an 8-bit RGBA result
func NewDecodeResult(img image.Image) *DecodeResult {
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	return &DecodeResult{
		PixelData:  rgba.Pix,
		Width:      b.Dx(),
		Height:     b.Dy(),
		Components: 4,
		BitDepth:   8,
	}
}

// ToRGBA returns img as a zero-origin *image.RGBA with a tight stride,
// converting through the color model when needed.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == b.Dx()*4 {
		return rgba
	}

	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if nrgba, ok := img.(*image.NRGBA); ok {
		premultiply(out, nrgba)
		return out
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

// premultiply converts PNG-style straight alpha, matching color.RGBAModel
func premultiply(dst *image.RGBA, src *image.NRGBA) {
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		d := dst.Pix[y*dst.Stride : (y+1)*dst.Stride]
		for i := 0; i < len(d); i += 4 {
			a := uint32(s[i+3])
			if a == 0xff {
				copy(d[i:i+4], s[i:i+4])
				continue
			}
			d[i+0] = uint8(uint32(s[i+0]) * 0x101 * a / 0xff >> 8)
			d[i+1] = uint8(uint32(s[i+1]) * 0x101 * a / 0xff >> 8)
			d[i+2] = uint8(uint32(s[i+2]) * 0x101 * a / 0xff >> 8)
			d[i+3] = uint8(a)
		}
	}
}
