package accessor

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// ViewBytes slices every buffer view of doc out of buffers, which holds the
// loaded content of each buffer in document order. Views stored with
// EXT_meshopt_compression are left out since their bytes need decompressing.
func ViewBytes(doc *gltf.Document, buffers [][]byte, log *zap.Logger) (map[int][]byte, error) {
	if log == nil {
		log = zap.NewNop()
	}
	views := make(map[int][]byte, len(doc.BufferViews))
	for i := range doc.BufferViews {
		v := &doc.BufferViews[i]
		if v.Meshopt() != nil {
			log.Debug("skipping compressed buffer view", zap.Int("view", i))
			continue
		}
		if v.Buffer < 0 || v.Buffer >= len(buffers) {
			return nil, fmt.Errorf("buffer view %d: %w", i, &IndexError{Kind: "buffer", Index: v.Buffer})
		}
		buf := buffers[v.Buffer]
		if v.ByteOffset > len(buf) || v.ByteLength > len(buf)-v.ByteOffset {
			return nil, fmt.Errorf("buffer view %d: offset %d and length %d exceed buffer %d of %d bytes",
				i, v.ByteOffset, v.ByteLength, v.Buffer, len(buf))
		}
		views[i] = buf[v.ByteOffset : v.ByteOffset+v.ByteLength]
	}
	return views, nil
}
