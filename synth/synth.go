// Package synth renders the wave pattern into an RGBA pixel buffer.
//
// The buffer is an *image.RGBA with a tight stride, so Pix is exactly
// width*height*4 bytes of row-major RGBA. Rows are independent and may be
// computed concurrently; the output does not depend on the worker count.
package synth

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/edaniels/golog"
	"golang.org/x/sync/errgroup"
)

// Synthesizer renders a Pattern
type Synthesizer struct {
	pattern Pattern
	workers int
	logger  golog.Logger
}

// Option configures a Synthesizer
type Option func(*Synthesizer)

// WithWorkers bounds the number of rows rendered concurrently.
// n <= 0 selects runtime.GOMAXPROCS(0); 1 renders rows sequentially.
func WithWorkers(n int) Option {
	return func(s *Synthesizer) {
		s.workers = n
	}
}

// WithLogger sets the logger used for render diagnostics
func WithLogger(logger golog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// New validates the pattern and creates a Synthesizer
func New(p Pattern, opts ...Option) (*Synthesizer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := &Synthesizer{pattern: p}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	if s.logger == nil {
		s.logger = golog.Global()
	}
	return s, nil
}

// Pattern returns the pattern being rendered
func (s *Synthesizer) Pattern() Pattern {
	return s.pattern
}

// Workers returns the effective concurrency
func (s *Synthesizer) Workers() int {
	return s.workers
}

// Render allocates a fresh buffer and fills it
func (s *Synthesizer) Render(ctx context.Context) (*image.RGBA, error) {
	img := image.NewRGBA(s.pattern.Rect())
	if err := s.RenderInto(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderInto fills img, which must have the pattern's bounds and a tight stride.
// On cancellation it returns ctx.Err() and img is partially written.
func (s *Synthesizer) RenderInto(ctx context.Context, img *image.RGBA) error {
	p := s.pattern
	if img.Rect != p.Rect() || img.Stride != p.Width*4 || len(img.Pix) != p.Width*p.Height*4 {
		return fmt.Errorf("%w: got %v stride %d, want %v stride %d",
			ErrBounds, img.Rect, img.Stride, p.Rect(), p.Width*4)
	}

	start := time.Now()
	cols := s.columnTerms()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	band := s.bandHeight()
	for y0 := 0; y0 < p.Height; y0 += band {
		y1 := min(y0+band, p.Height)
		g.Go(func() error {
			for y := y0; y < y1; y++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				s.renderRow(img.Pix[y*img.Stride:(y+1)*img.Stride], y, cols)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// errgroup only reports task errors; a cancellation that lands after the
	// last row still counts.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Debugw("pattern rendered",
		"width", p.Width,
		"height", p.Height,
		"workers", s.workers,
		"band", band,
		"elapsed", time.Since(start))
	return nil
}

// columnTerms holds x/Scale*coefficient per column for each channel
type columnTerms struct {
	r, g, b []float64
}

func (s *Synthesizer) columnTerms() columnTerms {
	p := s.pattern
	cols := columnTerms{
		r: make([]float64, p.Width),
		g: make([]float64, p.Width),
		b: make([]float64, p.Width),
	}
	for x := 0; x < p.Width; x++ {
		cols.r[x] = p.term(x, p.Red.X)
		cols.g[x] = p.term(x, p.Green.X)
		cols.b[x] = p.term(x, p.Blue.X)
	}
	return cols
}

func (s *Synthesizer) renderRow(row []byte, y int, cols columnTerms) {
	p := s.pattern
	ry := p.term(y, p.Red.Y)
	gy := p.term(y, p.Green.Y)
	by := p.term(y, p.Blue.Y)

	for x, i := 0, 0; x < p.Width; x, i = x+1, i+4 {
		px := row[i : i+4 : i+4]
		px[0] = p.quantize(cols.r[x] + ry)
		px[1] = p.quantize(cols.g[x] + gy)
		px[2] = p.quantize(cols.b[x] + by)
		px[3] = p.Alpha
	}
}

// bandHeight splits the image into roughly four bands per worker
func (s *Synthesizer) bandHeight() int {
	if s.workers == 1 {
		return s.pattern.Height
	}
	return max(1, s.pattern.Height/(s.workers*4))
}
