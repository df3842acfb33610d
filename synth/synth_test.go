package synth

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallPattern(width, height int) Pattern {
	p := DefaultPattern()
	p.Width, p.Height = width, height
	return p
}

func TestDefaultPattern(t *testing.T) {
	p := DefaultPattern()
	require.NoError(t, p.Validate())

	assert.Equal(t, 3840, p.Width)
	assert.Equal(t, 2160, p.Height)

	lo, hi := p.Bounds()
	assert.Equal(t, uint8(2), lo)
	assert.Equal(t, uint8(254), hi)
}

func TestKnownPixels(t *testing.T) {
	p := DefaultPattern()

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{x: 0, y: 0, want: color.RGBA{128, 128, 128, 255}},
		// sin(3)=0.1411, sin(5)=-0.9589, sin(7)=0.6570
		{x: 1000, y: 0, want: color.RGBA{145, 7, 210, 255}},
		{x: 0, y: 1000, want: color.RGBA{210, 7, 145, 255}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d,%d", tt.x, tt.y), func(t *testing.T) {
			assert.Equal(t, tt.want, p.At(tt.x, tt.y))
		})
	}
}

func TestTruncationNotRounding(t *testing.T) {
	p := DefaultPattern()
	// 128 + sin(3)*126 = 145.78; rounding would give 146
	assert.Equal(t, uint8(145), p.Channel(Wave{X: 3}, 1000, 0))
}

// wave is the textbook formula, with conversions that keep it free of FMA
func wave(x, y int, cx, cy float64) uint8 {
	phase := float64(float64(x)/1000*cx) + float64(float64(y)/1000*cy)
	return uint8(128 + float64(math.Sin(phase)*126))
}

func TestRenderMatchesFormula(t *testing.T) {
	p := smallPattern(97, 53)
	s, err := New(p, WithWorkers(3), WithLogger(golog.NewTestLogger(t)))
	require.NoError(t, err)

	img, err := s.Render(context.Background())
	require.NoError(t, err)

	mismatches := 0
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			want := [4]uint8{wave(x, y, 3, 7), wave(x, y, 5, 5), wave(x, y, 7, 3), 255}
			o := img.PixOffset(x, y)
			if [4]uint8(img.Pix[o:o+4]) != want {
				mismatches++
				if mismatches <= 5 {
					t.Errorf("pixel (%d,%d) = %v, want %v", x, y, img.Pix[o:o+4], want)
				}
			}
			if img.RGBAAt(x, y) != p.At(x, y) {
				t.Fatalf("pixel (%d,%d) disagrees with Pattern.At", x, y)
			}
		}
	}
}

func TestRenderDeterministicAcrossWorkers(t *testing.T) {
	p := smallPattern(257, 131)
	logger := golog.NewTestLogger(t)

	var reference []byte
	for _, workers := range []int{1, 2, 3, 8, 64, 0} {
		s, err := New(p, WithWorkers(workers), WithLogger(logger))
		require.NoError(t, err)

		img, err := s.Render(context.Background())
		require.NoError(t, err)

		if reference == nil {
			reference = img.Pix
			continue
		}
		assert.True(t, bytes.Equal(reference, img.Pix), "workers=%d produced different bytes", workers)
	}
}

func TestRenderFullSize(t *testing.T) {
	if testing.Short() {
		t.Skip("full 4K render skipped in short mode")
	}

	s, err := New(DefaultPattern(), WithLogger(golog.NewTestLogger(t)))
	require.NoError(t, err)

	img, err := s.Render(context.Background())
	require.NoError(t, err)

	require.Len(t, img.Pix, 3840*2160*4)
	assert.Equal(t, image.Rect(0, 0, 3840, 2160), img.Bounds())
	assert.Equal(t, []byte{128, 128, 128, 255}, img.Pix[:4])

	lo, hi := DefaultPattern().Bounds()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] != 255 {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, img.Pix[i+3])
		}
		for c := 0; c < 3; c++ {
			if v := img.Pix[i+c]; v < lo || v > hi {
				t.Fatalf("pixel %d channel %d = %d, outside [%d, %d]", i/4, c, v, lo, hi)
			}
		}
	}

	again, err := s.Render(context.Background())
	require.NoError(t, err)
	assert.True(t, bytes.Equal(img.Pix, again.Pix), "second render differs")
}

func TestRenderIntoBounds(t *testing.T) {
	s, err := New(smallPattern(10, 10), WithLogger(golog.NewTestLogger(t)))
	require.NoError(t, err)

	err = s.RenderInto(context.Background(), image.NewRGBA(image.Rect(0, 0, 10, 9)))
	assert.ErrorIs(t, err, ErrBounds)

	padded := image.NewRGBA(image.Rect(0, 0, 12, 10)).SubImage(image.Rect(0, 0, 10, 10)).(*image.RGBA)
	err = s.RenderInto(context.Background(), padded)
	assert.ErrorIs(t, err, ErrBounds)

	reuse := image.NewRGBA(image.Rect(0, 0, 10, 10))
	require.NoError(t, s.RenderInto(context.Background(), reuse))
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, reuse.RGBAAt(0, 0))
}

func TestRenderCanceled(t *testing.T) {
	s, err := New(smallPattern(64, 64), WithWorkers(2), WithLogger(golog.NewTestLogger(t)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Render(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Pattern)
		wantErr error
	}{
		{name: "default", mutate: func(p *Pattern) {}},
		{name: "zero width", mutate: func(p *Pattern) { p.Width = 0 }, wantErr: ErrInvalidDimensions},
		{name: "negative height", mutate: func(p *Pattern) { p.Height = -1 }, wantErr: ErrInvalidDimensions},
		{name: "too many pixels", mutate: func(p *Pattern) { p.Width, p.Height = 1<<15, 1<<14 }, wantErr: ErrInvalidDimensions},
		{name: "zero scale", mutate: func(p *Pattern) { p.Scale = 0 }, wantErr: ErrInvalidScale},
		{name: "nan scale", mutate: func(p *Pattern) { p.Scale = math.NaN() }, wantErr: ErrInvalidScale},
		{name: "amplitude overflows", mutate: func(p *Pattern) { p.Amplitude = 128 }, wantErr: ErrChannelRange},
		{name: "offset underflows", mutate: func(p *Pattern) { p.Offset = 100 }, wantErr: ErrChannelRange},
		{name: "negative amplitude", mutate: func(p *Pattern) { p.Amplitude = -126 }},
		{name: "full byte range", mutate: func(p *Pattern) { p.Offset, p.Amplitude = 127.5, 127.5 }},
		{name: "widest valid", mutate: func(p *Pattern) { p.Offset, p.Amplitude = 127.9, 127.9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPattern()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = New(p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWorkersDefault(t *testing.T) {
	s, err := New(smallPattern(4, 4), WithLogger(golog.NewTestLogger(t)))
	require.NoError(t, err)
	assert.Positive(t, s.Workers())
	assert.Equal(t, 4, s.Pattern().Width)
}

func BenchmarkRender(b *testing.B) {
	for _, workers := range []int{1, 4, 0} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			s, err := New(DefaultPattern(), WithWorkers(workers), WithLogger(golog.NewLogger("bench")))
			if err != nil {
				b.Fatal(err)
			}
			img := image.NewRGBA(s.Pattern().Rect())
			b.SetBytes(int64(len(img.Pix)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := s.RenderInto(context.Background(), img); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
