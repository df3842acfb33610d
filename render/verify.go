package render

import (
	"context"
	"fmt"
	"image"

	"github.com/cocosip/go-wavey/synth"
)

// Report summarises a verification
type Report struct {
	Path   string
	Codec  string
	Width  int
	Height int

	// AlphaErrors counts pixels whose alpha differs from the pattern's
	AlphaErrors int
	// RangeErrors counts color samples outside Pattern.Bounds
	RangeErrors int
	// Mismatches counts pixels that differ from a fresh render
	Mismatches int
	// FirstMismatch is the first differing pixel in scan order, if any
	FirstMismatch *image.Point
}

// OK reports whether every check passed
func (r *Report) OK() bool {
	return r.AlphaErrors == 0 && r.RangeErrors == 0 && r.Mismatches == 0
}

// Verify decodes path and checks it against the pattern: dimensions, alpha,
// channel range and exact equality with a fresh render. A failed check
// returns the report together with an error wrapping ErrVerify.
func Verify(ctx context.Context, path string, p synth.Pattern, workers int) (*Report, error) {
	decoded, c, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Path:   path,
		Codec:  c.Name(),
		Width:  decoded.Width,
		Height: decoded.Height,
	}
	if decoded.Width != p.Width || decoded.Height != p.Height {
		return rep, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
			ErrVerify, path, decoded.Width, decoded.Height, p.Width, p.Height)
	}

	s, err := synth.New(p, synth.WithWorkers(workers))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	want, err := s.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering reference: %w", err)
	}

	lo, hi := p.Bounds()
	got := decoded.PixelData
	for i := 0; i < len(got); i += 4 {
		px := got[i : i+4 : i+4]
		if px[3] != p.Alpha {
			rep.AlphaErrors++
		}
		for _, v := range px[:3] {
			if v < lo || v > hi {
				rep.RangeErrors++
			}
		}
		ref := want.Pix[i : i+4 : i+4]
		if px[0] != ref[0] || px[1] != ref[1] || px[2] != ref[2] || px[3] != ref[3] {
			if rep.Mismatches == 0 {
				pixel := i / 4
				rep.FirstMismatch = &image.Point{X: pixel % p.Width, Y: pixel / p.Width}
			}
			rep.Mismatches++
		}
	}

	if !rep.OK() {
		return rep, fmt.Errorf("%w: %s: %d alpha, %d range, %d pixel mismatches",
			ErrVerify, path, rep.AlphaErrors, rep.RangeErrors, rep.Mismatches)
	}
	return rep, nil
}
