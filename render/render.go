// Package render ties the synthesizer to the codecs: it renders a pattern,
// encodes it and writes the file, logging how long each step took.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/cocosip/go-wavey/codec"
	"github.com/cocosip/go-wavey/synth"
	"github.com/edaniels/golog"

	// Register codecs
	_ "github.com/cocosip/go-wavey/codec/bmp"
	_ "github.com/cocosip/go-wavey/codec/png"
	_ "github.com/cocosip/go-wavey/codec/raw"
	_ "github.com/cocosip/go-wavey/codec/tiff"
)

// DefaultOutput is written to the working directory when no path is given
const DefaultOutput = "Wavey.png"

// Job describes one render
type Job struct {
	Pattern synth.Pattern

	// Output is the destination file
	Output string

	// Codec overrides the codec picked from Output's extension
	Codec codec.Codec

	// Options are passed to the codec
	Options codec.Options

	// Workers bounds row concurrency, see synth.WithWorkers
	Workers int
}

// DefaultJob renders the default pattern to Wavey.png
func DefaultJob() Job {
	return Job{
		Pattern: synth.DefaultPattern(),
		Output:  DefaultOutput,
	}
}

// Result reports what a job produced
type Result struct {
	Output    string
	Codec     string
	Width     int
	Height    int
	Bytes     int64
	Synthesis time.Duration
	Encoding  time.Duration
	Elapsed   time.Duration
}

// resolveCodec returns the job's codec, falling back to the output extension
func (j Job) resolveCodec() (codec.Codec, error) {
	if j.Codec != nil {
		return j.Codec, nil
	}
	c, err := codec.ForPath(j.Output)
	if err != nil {
		return nil, fmt.Errorf("choosing codec for %q: %w", j.Output, err)
	}
	return c, nil
}

// Run renders the job and writes the output file
func Run(ctx context.Context, job Job, logger golog.Logger) (*Result, error) {
	if logger == nil {
		logger = golog.Global()
	}
	if job.Output == "" {
		return nil, ErrNoOutput
	}

	c, err := job.resolveCodec()
	if err != nil {
		return nil, err
	}

	s, err := synth.New(job.Pattern, synth.WithWorkers(job.Workers), synth.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	start := time.Now()
	img, err := s.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}
	synthesized := time.Now()

	n, err := WriteFile(job.Output, c, codec.NewEncodeParams(img, job.Options))
	if err != nil {
		return nil, err
	}
	done := time.Now()

	res := &Result{
		Output:    job.Output,
		Codec:     c.Name(),
		Width:     job.Pattern.Width,
		Height:    job.Pattern.Height,
		Bytes:     n,
		Synthesis: synthesized.Sub(start),
		Encoding:  done.Sub(synthesized),
		Elapsed:   done.Sub(start),
	}

	logger.Infow("image written",
		"output", res.Output,
		"codec", res.Codec,
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"bytes", res.Bytes,
		"workers", s.Workers(),
		"synthesis", res.Synthesis.Round(time.Millisecond),
		"encoding", res.Encoding.Round(time.Millisecond),
		"took", fmt.Sprintf("%.3fs", res.Elapsed.Seconds()))
	return res, nil
}
