package accessor

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

func TestViewBytes(t *testing.T) {
	doc := &gltf.Document{
		BufferViews: []gltf.BufferView{
			{Buffer: 0, ByteOffset: 2, ByteLength: 3},
			{Buffer: 1, ByteLength: 2},
		},
	}
	buffers := [][]byte{{0, 1, 2, 3, 4, 5}, {9, 8}}

	views, err := ViewBytes(doc, buffers, nil)
	if err != nil {
		t.Fatalf("ViewBytes failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if string(views[0]) != string([]byte{2, 3, 4}) {
		t.Errorf("expected [2 3 4], got %v", views[0])
	}
	if string(views[1]) != string([]byte{9, 8}) {
		t.Errorf("expected [9 8], got %v", views[1])
	}
}

func TestViewBytesErrors(t *testing.T) {
	tests := []struct {
		name string
		view gltf.BufferView
	}{
		{"missing buffer", gltf.BufferView{Buffer: 3, ByteLength: 1}},
		{"range past end", gltf.BufferView{Buffer: 0, ByteOffset: 4, ByteLength: 4}},
		{"offset past end", gltf.BufferView{Buffer: 0, ByteOffset: 7}},
		{"offset plus length overflows", gltf.BufferView{Buffer: 0, ByteOffset: math.MaxInt, ByteLength: 2}},
		{"length overflows", gltf.BufferView{Buffer: 0, ByteOffset: 2, ByteLength: math.MaxInt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &gltf.Document{BufferViews: []gltf.BufferView{tt.view}}
			if _, err := ViewBytes(doc, [][]byte{make([]byte, 6)}, nil); err == nil {
				t.Error("expected error")
			}
		})
	}

	doc := &gltf.Document{BufferViews: []gltf.BufferView{{Buffer: 2}}}
	_, err := ViewBytes(doc, nil, nil)
	var ierr *IndexError
	if !errors.As(err, &ierr) || ierr.Kind != "buffer" || ierr.Index != 2 {
		t.Errorf("expected buffer index error, got %v", err)
	}
}

func TestViewBytesSkipsCompressed(t *testing.T) {
	doc, err := gltf.LoadJSONText(`{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 8}],
  "bufferViews": [
    {"buffer": 0, "byteLength": 1000, "extensions": {"EXT_meshopt_compression":
      {"buffer": 0, "byteLength": 8, "byteStride": 4, "mode": "INDICES", "count": 2}}},
    {"buffer": 0, "byteLength": 8}
  ]
}`)
	if err != nil {
		t.Fatalf("LoadJSONText failed: %v", err)
	}

	views, err := ViewBytes(doc, [][]byte{make([]byte, 8)}, nil)
	if err != nil {
		t.Fatalf("ViewBytes failed: %v", err)
	}
	if _, ok := views[0]; ok {
		t.Error("expected compressed view to be skipped")
	}
	if len(views[1]) != 8 {
		t.Errorf("expected 8 bytes for view 1, got %d", len(views[1]))
	}
}
