// Package resource loads the buffers and images a glTF document references.
package resource

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Resource loading errors.
var (
	ErrNoBinaryChunk  = errors.New("buffer refers to a missing GLB binary chunk")
	ErrInvalidDataURI = errors.New("invalid data URI")
	ErrPathEscape     = errors.New("URI escapes the document directory")
)

// Loader resolves URIs relative to a document. Loaded URIs are cached.
type Loader struct {
	baseDir string
	bin     []byte
	cache   *Cache
	log     *zap.Logger
}

// NewLoader creates a loader for a document stored in baseDir. bin is the GLB
// binary chunk, or nil for a .gltf file.
func NewLoader(baseDir string, bin []byte, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		baseDir: baseDir,
		bin:     bin,
		cache:   NewCache(),
		log:     log,
	}
}

// Open reads a .gltf or .glb file and returns its document with a loader
// rooted at the file's directory.
func Open(path string, set gltf.ExtensionSet, log *zap.Logger) (*gltf.Document, *Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, bin, err := gltf.LoadWith(data, set)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, NewLoader(filepath.Dir(path), bin, log), nil
}

// Load returns the bytes referenced by uri: a data URI or a path relative to
// the document directory.
func (l *Loader) Load(uri string) ([]byte, error) {
	if data, ok := l.cache.Get(uri); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(uri, "data:") {
		data, err = DecodeDataURI(uri)
	} else {
		data, err = l.loadFile(uri)
	}
	if err != nil {
		return nil, err
	}

	l.cache.Set(uri, data)
	return data, nil
}

// CacheStats reports how often loaded URIs were reused.
func (l *Loader) CacheStats() CacheStats {
	return l.cache.Stats()
}

func (l *Loader) loadFile(uri string) ([]byte, error) {
	name, err := url.PathUnescape(uri)
	if err != nil {
		return nil, fmt.Errorf("unescaping %q: %w", uri, err)
	}
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) || !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%q: %w", uri, ErrPathEscape)
	}

	data, err := os.ReadFile(filepath.Join(l.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", uri, err)
	}
	l.log.Debug("loaded file", zap.String("uri", uri), zap.Int("bytes", len(data)))
	return data, nil
}

// Buffer returns the contents of buffer i. An empty URI selects the GLB
// binary chunk. Data shorter than the declared length is returned as is and
// logged; accessor reads clamp to what is present.
func (l *Loader) Buffer(doc *gltf.Document, i int) ([]byte, error) {
	if i < 0 || i >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range (%d buffers)", i, len(doc.Buffers))
	}
	b := &doc.Buffers[i]

	var data []byte
	if b.URI == "" {
		if l.bin == nil {
			return nil, fmt.Errorf("buffer %d: %w", i, ErrNoBinaryChunk)
		}
		data = l.bin
	} else {
		var err error
		if data, err = l.Load(b.URI); err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
	}

	if len(data) < b.ByteLength {
		l.log.Warn("buffer shorter than declared",
			zap.Int("buffer", i),
			zap.Int("declared", b.ByteLength),
			zap.Int("available", len(data)))
	}
	return data, nil
}

// Buffers loads every buffer of doc, in order.
func (l *Loader) Buffers(doc *gltf.Document) ([][]byte, error) {
	out := make([][]byte, len(doc.Buffers))
	for i := range doc.Buffers {
		data, err := l.Buffer(doc, i)
		if err != nil {
			return nil, err
		}
		out[i] = data
	}
	return out, nil
}

// Image returns the encoded bytes of image i and its MIME type. Images stored
// in a buffer view are read from views, as built by accessor.ViewBytes.
func (l *Loader) Image(doc *gltf.Document, i int, views map[int][]byte) ([]byte, string, error) {
	if i < 0 || i >= len(doc.Images) {
		return nil, "", fmt.Errorf("image %d out of range (%d images)", i, len(doc.Images))
	}
	img := &doc.Images[i]

	if img.BufferView != nil {
		data, ok := views[*img.BufferView]
		if !ok {
			return nil, "", fmt.Errorf("image %d: buffer view %d not loaded", i, *img.BufferView)
		}
		return data, img.MimeType, nil
	}
	if img.URI == "" {
		return nil, "", fmt.Errorf("image %d has neither uri nor bufferView", i)
	}

	data, err := l.Load(img.URI)
	if err != nil {
		return nil, "", fmt.Errorf("image %d: %w", i, err)
	}
	mime := img.MimeType
	if mime == "" {
		mime = mimeType(img.URI)
	}
	return data, mime, nil
}

// DecodeDataURI decodes a base64 data URI.
// Format: data:[<mediatype>][;base64],<data>
func DecodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasPrefix(uri, "data:") {
		return nil, ErrInvalidDataURI
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidDataURI, header)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, nil
}

// mimeType returns the media type of a data URI, or guesses it from a file
// extension.
func mimeType(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "data:"); ok {
		media, _, _ := strings.Cut(rest, ";")
		return media
	}
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".ktx2":
		return "image/ktx2"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
