// Package raw stores the pixel buffer as-is behind a small header, optionally
// zstd compressed. The layout is native interleaved little-endian samples, the
// same arrangement DICOM calls Explicit VR Little Endian pixel data.
//
// Header (16 bytes, little-endian):
//
//	0  magic "WRGB"
//	4  version (uint32, currently 1)
//	8  width   (uint32)
//	12 height  (uint32)
//
// followed by width*height*4 RGBA bytes in row-major order.
package raw

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-wavey/codec"
	"github.com/klauspost/compress/zstd"
)

const (
	headerSize = 16
	version    = 1

	// maxPixelBytes caps allocations when decoding untrusted headers
	maxPixelBytes = 1 << 31
)

var magic = [4]byte{'W', 'R', 'G', 'B'}

var (
	// ErrBadHeader is returned when the stream does not start with a valid header
	ErrBadHeader = errors.New("raw: bad header")

	// ErrTruncated is returned when the stream ends before all pixels are read
	ErrTruncated = errors.New("raw: truncated pixel data")
)

// Codec implements the codec.Codec interface for raw RGBA buffers
type Codec struct {
	name       string
	uid        string
	exts       []string
	compressed bool
}

// NewCodec creates the uncompressed raw codec
func NewCodec() *Codec {
	return &Codec{
		name: "rgba-raw",
		uid:  transfer.ExplicitVRLittleEndian.UID().UID(),
		exts: []string{".rgba", ".raw"},
	}
}

// NewZstdCodec creates the zstd-compressed raw codec
func NewZstdCodec() *Codec {
	return &Codec{
		name:       "rgba-raw-zstd",
		uid:        "application/zstd",
		exts:       []string{".rgba.zst", ".raw.zst"},
		compressed: true,
	}
}

// Encode writes the header and pixel buffer
func (c *Codec) Encode(w io.Writer, params codec.EncodeParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if !c.compressed {
		return writeFrame(w, params)
	}

	opts := NewParameters()
	if params.Options != nil {
		if p, ok := params.Options.(*Parameters); ok {
			opts = p
		}
	}

	zopts := []zstd.EOption{zstd.WithEncoderLevel(opts.Level)}
	if opts.Concurrency > 0 {
		zopts = append(zopts, zstd.WithEncoderConcurrency(opts.Concurrency))
	}
	enc, err := zstd.NewWriter(w, zopts...)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := writeFrame(enc, params); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return nil
}

// Decode reads the header and pixel buffer
func (c *Codec) Decode(r io.Reader) (*codec.DecodeResult, error) {
	if !c.compressed {
		return readFrame(bufio.NewReader(r))
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()
	return readFrame(dec)
}

// UID returns the identifier for this layout
func (c *Codec) UID() string {
	return c.uid
}

// Name returns the human-readable name
func (c *Codec) Name() string {
	return c.name
}

// Extensions returns the file extensions
func (c *Codec) Extensions() []string {
	return c.exts
}

func writeFrame(w io.Writer, params codec.EncodeParams) error {
	var hdr [headerSize]byte
	copy(hdr[0:4], magic[:])
	binary.LittleEndian.PutUint32(hdr[4:8], version)
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(params.Width))
	binary.LittleEndian.PutUint32(hdr[12:16], uint32(params.Height))

	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(params.PixelData); err != nil {
		return fmt.Errorf("writing pixels: %w", err)
	}
	return nil
}

func readFrame(r io.Reader) (*codec.DecodeResult, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if [4]byte(hdr[0:4]) != magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadHeader, hdr[0:4])
	}
	if v := binary.LittleEndian.Uint32(hdr[4:8]); v != version {
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, v)
	}

	width := uint64(binary.LittleEndian.Uint32(hdr[8:12]))
	height := uint64(binary.LittleEndian.Uint32(hdr[12:16]))
	// both factors are below 2^32, so the product cannot overflow
	if width == 0 || height == 0 || width*height > maxPixelBytes/4 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadHeader, width, height)
	}

	pix := make([]byte, width*height*4)
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}

	return &codec.DecodeResult{
		PixelData:  pix,
		Width:      int(width),
		Height:     int(height),
		Components: 4,
		BitDepth:   8,
	}, nil
}

func init() {
	codec.Register(NewCodec())
	codec.Register(NewZstdCodec())
}
