// Package accessor turns glTF accessors into typed numeric arrays.
//
// Buffer data is supplied by the caller as a map from buffer view index to the
// bytes of that view. Decoding never reads outside those bytes.
package accessor

import (
	"math"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Slice is the byte range of one accessor within its buffer view.
type Slice struct {
	Data      []byte
	Stride    int  // Stride declared by the buffer view, 0 when absent
	Requested int  // Bytes the accessor asked for
	Clamped   bool // Data is shorter than Requested
}

// Stride returns the distance between elements of acc in view. A meshopt
// compressed view's stride wins over the declared one, and the tightly packed
// element size is used when neither is set.
func Stride(acc *gltf.Accessor, view *gltf.BufferView) int {
	if m := view.Meshopt(); m != nil {
		return m.ByteStride
	}
	if view.ByteStride != 0 {
		return view.ByteStride
	}
	return acc.ElementSize()
}

// ByteLength returns the number of bytes acc spans in view. Lengths that do
// not fit in an int saturate at math.MaxInt.
func ByteLength(acc *gltf.Accessor, view *gltf.BufferView) int {
	return mulSat(acc.Count, Stride(acc, view))
}

// mulSat multiplies two non-negative ints, saturating at math.MaxInt.
func mulSat(a, b int) int {
	if a > 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}

// Resolve returns the bytes of acc taken from views.
//
// The range starts at the accessor's byte offset and spans Count elements. A
// range running past the end of the view bytes is cut short and marked
// Clamped rather than rejected.
func Resolve(doc *gltf.Document, views map[int][]byte, acc *gltf.Accessor) (Slice, error) {
	if acc.BufferView == nil {
		return Slice{}, ErrMissingBufferView
	}
	idx := *acc.BufferView
	if idx < 0 || idx >= len(doc.BufferViews) {
		return Slice{}, &IndexError{Kind: "buffer view", Index: idx}
	}
	view := &doc.BufferViews[idx]

	data, ok := views[idx]
	if !ok {
		return Slice{}, &IndexError{Kind: "buffer view", Index: idx}
	}

	s := Slice{Stride: view.ByteStride, Requested: ByteLength(acc, view)}

	// Bounds are checked against the bytes left after start.
	start := acc.ByteOffset
	if start > len(data) {
		start = len(data)
		s.Clamped = s.Requested > 0
	}
	end := len(data)
	if s.Requested <= end-start {
		end = start + s.Requested
	} else {
		s.Clamped = true
	}
	s.Data = data[start:end]
	return s, nil
}
