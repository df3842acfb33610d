package codec_test

import (
	"errors"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/cocosip/go-wavey/codec"
	_ "github.com/cocosip/go-wavey/codec/png"
	_ "github.com/cocosip/go-wavey/codec/raw"
)

func TestCodecRegistry(t *testing.T) {
	rawUID := transfer.ExplicitVRLittleEndian.UID().UID()

	tests := []struct {
		name      string
		key       string
		wantFound bool
		wantUID   string
		wantName  string
	}{
		{
			name:      "Get png by UID",
			key:       "image/png",
			wantFound: true,
			wantUID:   "image/png",
			wantName:  "png",
		},
		{
			name:      "Get png by name",
			key:       "png",
			wantFound: true,
			wantUID:   "image/png",
			wantName:  "png",
		},
		{
			name:      "Get png by extension",
			key:       ".PNG",
			wantFound: true,
			wantUID:   "image/png",
			wantName:  "png",
		},
		{
			name:      "Get raw by transfer syntax UID",
			key:       rawUID,
			wantFound: true,
			wantUID:   rawUID,
			wantName:  "rgba-raw",
		},
		{
			name:      "Get non-existent codec",
			key:       "non-existent",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.Get(tt.key)

			if tt.wantFound {
				if err != nil {
					t.Errorf("Get(%q) unexpected error: %v", tt.key, err)
					return
				}
				if c.UID() != tt.wantUID {
					t.Errorf("Get(%q).UID() = %q, want %q", tt.key, c.UID(), tt.wantUID)
				}
				if c.Name() != tt.wantName {
					t.Errorf("Get(%q).Name() = %q, want %q", tt.key, c.Name(), tt.wantName)
				}
			} else if !errors.Is(err, codec.ErrCodecNotFound) {
				t.Errorf("Get(%q) error = %v, want %v", tt.key, err, codec.ErrCodecNotFound)
			}
		})
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path     string
		wantName string
		wantErr  bool
	}{
		{path: "Wavey.png", wantName: "png"},
		{path: "out/dir/WAVEY.PNG", wantName: "png"},
		{path: "frame.rgba", wantName: "rgba-raw"},
		{path: "frame.rgba.zst", wantName: "rgba-raw-zstd"},
		{path: "Wavey", wantErr: true},
		{path: ".png", wantErr: true},
		{path: "Wavey.gif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c, err := codec.ForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, codec.ErrCodecNotFound) {
					t.Errorf("ForPath(%q) error = %v, want %v", tt.path, err, codec.ErrCodecNotFound)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath(%q) unexpected error: %v", tt.path, err)
			}
			if c.Name() != tt.wantName {
				t.Errorf("ForPath(%q).Name() = %q, want %q", tt.path, c.Name(), tt.wantName)
			}
		})
	}
}

func TestListCodecs(t *testing.T) {
	codecs := codec.List()

	if len(codecs) < 3 {
		t.Errorf("List() returned %d codecs, want at least 3", len(codecs))
	}

	for i := 1; i < len(codecs); i++ {
		if codecs[i-1].Name() >= codecs[i].Name() {
			t.Errorf("List() not sorted or has duplicates: %q before %q", codecs[i-1].Name(), codecs[i].Name())
		}
	}
}

type stubCodec struct{ name string }

func (s *stubCodec) Encode(io.Writer, codec.EncodeParams) error { return nil }
func (s *stubCodec) Decode(io.Reader) (*codec.DecodeResult, error) { return nil, nil }
func (s *stubCodec) UID() string { return "" }
func (s *stubCodec) Name() string { return s.name }
func (s *stubCodec) Extensions() []string { return []string{".stub"} }

func TestRegistryIsolation(t *testing.T) {
	r := codec.NewRegistry()
	r.Register(&stubCodec{name: "stub"})

	if _, err := r.Get("stub"); err != nil {
		t.Fatalf("Get(stub) unexpected error: %v", err)
	}
	if _, err := r.Get("png"); !errors.Is(err, codec.ErrCodecNotFound) {
		t.Errorf("private registry leaked default codec: %v", err)
	}
	if _, err := codec.Get("stub"); !errors.Is(err, codec.ErrCodecNotFound) {
		t.Errorf("default registry sees private codec: %v", err)
	}
	if got := len(r.List()); got != 1 {
		t.Errorf("List() = %d codecs, want 1", got)
	}
}

type badOptions struct{}

func (badOptions) Validate() error { return codec.ErrInvalidCompressionLevel }

func TestEncodeParamsValidate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))

	tests := []struct {
		name    string
		params  codec.EncodeParams
		wantErr error
	}{
		{name: "valid", params: codec.NewEncodeParams(img, nil)},
		{
			name:    "zero width",
			params:  codec.EncodeParams{Height: 3, Components: 4, BitDepth: 8},
			wantErr: codec.ErrInvalidParameter,
		},
		{
			name:    "rgb",
			params:  codec.EncodeParams{PixelData: make([]byte, 36), Width: 4, Height: 3, Components: 3, BitDepth: 8},
			wantErr: codec.ErrUnsupportedFormat,
		},
		{
			name:    "short buffer",
			params:  codec.EncodeParams{PixelData: make([]byte, 47), Width: 4, Height: 3, Components: 4, BitDepth: 8},
			wantErr: codec.ErrSizeMismatch,
		},
		{
			name:    "bad options",
			params:  codec.NewEncodeParams(img, badOptions{}),
			wantErr: codec.ErrInvalidCompressionLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestToRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 3))

	out := codec.ToRGBA(sub)
	if out.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want 2x2 at origin", out.Bounds())
	}
	if out.Stride != 8 {
		t.Errorf("stride = %d, want 8", out.Stride)
	}
	if out.RGBAAt(0, 0) != src.RGBAAt(1, 1) {
		t.Errorf("pixel (0,0) = %v, want %v", out.RGBAAt(0, 0), src.RGBAAt(1, 1))
	}
}

func TestToRGBAStraightAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	pixels := []color.NRGBA{
		{R: 200, G: 100, B: 50, A: 255},
		{R: 200, G: 100, B: 50, A: 128},
		{R: 255, G: 255, B: 255, A: 0},
	}
	for x, c := range pixels {
		src.SetNRGBA(x, 0, c)
	}

	out := codec.ToRGBA(src)
	for x, c := range pixels {
		want := color.RGBAModel.Convert(c).(color.RGBA)
		if got := out.RGBAAt(x, 0); got != want {
			t.Errorf("pixel %d = %v, want %v", x, got, want)
		}
	}
}
