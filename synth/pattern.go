package synth

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

const (
	// DefaultWidth and DefaultHeight are 4K UHD
	DefaultWidth  = 3840
	DefaultHeight = 2160

	// MaxPixels bounds a single buffer (width*height) to keep allocations sane
	MaxPixels = 1 << 28
)

// Wave holds the per-axis coefficients of one channel:
// value = sin(x/Scale*X + y/Scale*Y)
type Wave struct {
	X float64
	Y float64
}

// Pattern is the closed-form description of the image.
//
// Each color channel is
//
//	uint8(Offset + sin(x/Scale*wave.X + y/Scale*wave.Y) * Amplitude)
//
// where the conversion truncates toward zero. Since sin is in [-1, 1] the
// channel stays within [trunc(Offset-Amplitude), trunc(Offset+Amplitude)],
// which is [2, 254] for the default pattern. Validate rejects constants whose
// range leaves [0, 256) rather than clamping.
type Pattern struct {
	Width  int
	Height int

	// Scale divides both coordinates before the coefficients apply
	Scale float64

	Red   Wave
	Green Wave
	Blue  Wave

	Offset    float64
	Amplitude float64
	Alpha     uint8
}

// DefaultPattern returns the 3840x2160 wave image
func DefaultPattern() Pattern {
	return Pattern{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Scale:     1000,
		Red:       Wave{X: 3, Y: 7},
		Green:     Wave{X: 5, Y: 5},
		Blue:      Wave{X: 7, Y: 3},
		Offset:    128,
		Amplitude: 126,
		Alpha:     255,
	}
}

// Validate checks dimensions, scale and channel range
func (p Pattern) Validate() error {
	if p.Width <= 0 || p.Height <= 0 || p.Width > MaxPixels/p.Height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.Scale == 0 || math.IsNaN(p.Scale) || math.IsInf(p.Scale, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, p.Scale)
	}
	amp := math.Abs(p.Amplitude)
	lo, hi := p.Offset-amp, p.Offset+amp
	if math.IsNaN(lo) || math.IsNaN(hi) || lo < 0 || hi >= 256 {
		return fmt.Errorf("%w: offset %v amplitude %v spans [%v, %v]", ErrChannelRange, p.Offset, p.Amplitude, lo, hi)
	}
	return nil
}

// Bounds returns the smallest and largest value any color channel can take.
// Only meaningful for a valid pattern.
func (p Pattern) Bounds() (lo, hi uint8) {
	amp := math.Abs(p.Amplitude)
	return uint8(p.Offset - amp), uint8(p.Offset + amp)
}

// Rect returns the image rectangle of the pattern
func (p Pattern) Rect() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// Channel evaluates one wave at (x, y)
func (p Pattern) Channel(w Wave, x, y int) uint8 {
	return p.quantize(p.term(x, w.X) + p.term(y, w.Y))
}

// At evaluates the pattern at a single pixel
func (p Pattern) At(x, y int) color.RGBA {
	return color.RGBA{
		R: p.Channel(p.Red, x, y),
		G: p.Channel(p.Green, x, y),
		B: p.Channel(p.Blue, x, y),
		A: p.Alpha,
	}
}

// The explicit float64 conversions force rounding after each product so no
// platform fuses them into an FMA; row rendering and At must agree bit for bit.

func (p Pattern) term(v int, coeff float64) float64 {
	return float64(float64(v) / p.Scale * coeff)
}

func (p Pattern) quantize(phase float64) uint8 {
	return uint8(p.Offset + float64(math.Sin(phase)*p.Amplitude))
}
