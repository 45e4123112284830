package accessor

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Accessor decoding errors.
var (
	ErrMissingBufferView = errors.New("accessor is missing buffer view")
	ErrUnsupported       = errors.New("unsupported combination of component type, normalized and byte stride")
)

// IndexError reports a reference to an entity that does not exist.
type IndexError struct {
	Kind  string // "accessor" or "buffer view"
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of bounds", e.Kind, e.Index)
}

// UnsupportedError reports an accessor layout that a typed reader cannot decode.
// Site names the reader. Stride is 0 when the buffer view declares none.
type UnsupportedError struct {
	Site          string
	ComponentType gltf.ComponentType
	Normalized    bool
	Stride        int
}

func (e *UnsupportedError) Error() string {
	stride := "none"
	if e.Stride != 0 {
		stride = fmt.Sprintf("%d", e.Stride)
	}
	return fmt.Sprintf("%s: %v: (%s, normalized %t, stride %s)",
		e.Site, ErrUnsupported, e.ComponentType, e.Normalized, stride)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
