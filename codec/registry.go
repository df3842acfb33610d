package codec

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry manages the available codecs
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec // key can be name, UID or extension
	exts   map[string]Codec // lower-case extension with leading dot
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Codec),
		exts:   make(map[string]Codec),
	}
}

var defaultRegistry = NewRegistry()

// Register registers a codec in the default registry
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Get retrieves a codec by name, UID or extension
func Get(key string) (Codec, error) {
	return defaultRegistry.Get(key)
}

// List returns all registered codecs
func List() []Codec {
	return defaultRegistry.List()
}

// ForPath picks the codec for a file path by its extension
func ForPath(path string) (Codec, error) {
	return defaultRegistry.ForPath(path)
}

// Register registers a codec under its name, UID and extensions
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[codec.Name()] = codec
	if uid := codec.UID(); uid != "" {
		r.codecs[uid] = codec
	}
	for _, ext := range codec.Extensions() {
		r.exts[strings.ToLower(ext)] = codec
	}
}

// Get retrieves a codec by name, UID or extension (".png" or "png")
func (r *Registry) Get(key string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if codec, ok := r.codecs[key]; ok {
		return codec, nil
	}

	ext := strings.ToLower(key)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if codec, ok := r.exts[ext]; ok {
		return codec, nil
	}
	return nil, ErrCodecNotFound
}

// ForPath matches the longest registered extension suffix of path,
// so "a.rgba.zst" prefers ".rgba.zst" over ".zst".
func (r *Registry) ForPath(path string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	base := strings.ToLower(filepath.Base(path))
	var (
		best    Codec
		bestLen int
	)
	for ext, codec := range r.exts {
		if len(ext) > bestLen && len(base) > len(ext) && strings.HasSuffix(base, ext) {
			best, bestLen = codec, len(ext)
		}
	}
	if best == nil {
		return nil, ErrCodecNotFound
	}
	return best, nil
}

// List returns all registered codecs (deduplicated, sorted by name)
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool)
	codecs := make([]Codec, 0)

	for _, codec := range r.codecs {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}
	for _, codec := range r.exts {
		if !seen[codec] {
			seen[codec] = true
			codecs = append(codecs, codec)
		}
	}

	sort.Slice(codecs, func(i, j int) bool {
		return codecs[i].Name() < codecs[j].Name()
	})
	return codecs
}
