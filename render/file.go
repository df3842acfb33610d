package render

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cocosip/go-wavey/codec"
)

// WriteFile encodes params with c and replaces path atomically.
//
// The image is written to a temporary file in the same directory, synced,
// closed and renamed over path. On any failure the temporary file is removed
// and path is left as it was. It returns the number of bytes written.
func WriteFile(path string, c codec.Codec, params codec.EncodeParams) (n int64, err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating output: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	cw := &countingWriter{w: f}
	bw := bufio.NewWriterSize(cw, 1<<20)
	if err = c.Encode(bw, params); err != nil {
		return 0, fmt.Errorf("encoding %s: %w", c.Name(), err)
	}
	if err = bw.Flush(); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}
	if err = f.Sync(); err != nil {
		return 0, fmt.Errorf("syncing output: %w", err)
	}
	if err = f.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("setting permissions: %w", err)
	}
	if err = f.Close(); err != nil {
		return 0, fmt.Errorf("closing output: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("replacing %s: %w", path, err)
	}
	return cw.n, nil
}

// ReadFile decodes path with the codec registered for its extension
func ReadFile(path string) (*codec.DecodeResult, codec.Codec, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	result, err := c.Decode(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return result, c, nil
}

type countingWriter struct {
	w *os.File
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
