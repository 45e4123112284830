package gltf

import "fmt"

// ComponentType is the numeric type of each accessor component.
// The values are the wire codes.
type ComponentType uint16

const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
)

// ParseComponentType maps a wire code to a ComponentType.
func ParseComponentType(code uint64) (ComponentType, bool) {
	switch code {
	case uint64(ComponentByte), uint64(ComponentUnsignedByte), uint64(ComponentShort),
		uint64(ComponentUnsignedShort), uint64(ComponentUnsignedInt), uint64(ComponentFloat):
		return ComponentType(code), true
	}
	return 0, false
}

// Size returns the size of one component in bytes.
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentShort, ComponentUnsignedShort:
		return 2
	case ComponentUnsignedInt, ComponentFloat:
		return 4
	default:
		return 0
	}
}

// String returns a human-readable component type name.
func (c ComponentType) String() string {
	switch c {
	case ComponentByte:
		return "Byte"
	case ComponentUnsignedByte:
		return "UnsignedByte"
	case ComponentShort:
		return "Short"
	case ComponentUnsignedShort:
		return "UnsignedShort"
	case ComponentUnsignedInt:
		return "UnsignedInt"
	case ComponentFloat:
		return "Float"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(c))
	}
}

// AccessorType is the structural shape of an accessor element.
type AccessorType uint8

const (
	Scalar AccessorType = iota
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

var accessorTypeNames = []string{"SCALAR", "VEC2", "VEC3", "VEC4", "MAT2", "MAT3", "MAT4"}

// Components returns the number of components in one element.
func (t AccessorType) Components() int {
	switch t {
	case Scalar:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	case Vec4, Mat2:
		return 4
	case Mat3:
		return 9
	case Mat4:
		return 16
	default:
		return 0
	}
}

func (t AccessorType) String() string { return name(accessorTypeNames, t) }

// FilterMode is a texture magnification filter, or the base of a minification filter.
type FilterMode uint16

const (
	FilterNearest FilterMode = 9728
	FilterLinear  FilterMode = 9729
)

// ParseFilterMode maps a wire code to a FilterMode.
func ParseFilterMode(code uint64) (FilterMode, bool) {
	switch code {
	case uint64(FilterNearest), uint64(FilterLinear):
		return FilterMode(code), true
	}
	return 0, false
}

func (f FilterMode) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterLinear:
		return "Linear"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(f))
	}
}

// MinFilter is a minification filter split into its base filter and an
// optional mipmap filter. Mipmap is 0 when the filter does not use mipmaps.
type MinFilter struct {
	Mode   FilterMode
	Mipmap FilterMode
}

// minFilterCodes holds the combined mipmap codes 9984..9987 in order.
var minFilterCodes = [...]MinFilter{
	{Mode: FilterNearest, Mipmap: FilterNearest}, // NEAREST_MIPMAP_NEAREST
	{Mode: FilterLinear, Mipmap: FilterNearest},  // LINEAR_MIPMAP_NEAREST
	{Mode: FilterNearest, Mipmap: FilterLinear},  // NEAREST_MIPMAP_LINEAR
	{Mode: FilterLinear, Mipmap: FilterLinear},   // LINEAR_MIPMAP_LINEAR
}

// ParseMinFilter maps one of the six minification codes to a MinFilter.
func ParseMinFilter(code uint64) (MinFilter, bool) {
	if mode, ok := ParseFilterMode(code); ok {
		return MinFilter{Mode: mode}, true
	}
	if code >= 9984 && code <= 9987 {
		return minFilterCodes[code-9984], true
	}
	return MinFilter{}, false
}

// HasMipmap reports whether the filter samples between mipmap levels.
func (m MinFilter) HasMipmap() bool {
	return m.Mipmap != 0
}

// Code returns the wire code for m, or 0 when m is not a valid combination.
func (m MinFilter) Code() uint16 {
	if !m.HasMipmap() {
		return uint16(m.Mode)
	}
	for i, f := range minFilterCodes {
		if f == m {
			return 9984 + uint16(i)
		}
	}
	return 0
}

// WrapMode is a texture coordinate wrapping mode.
type WrapMode uint16

const (
	WrapClampToEdge    WrapMode = 33071
	WrapMirroredRepeat WrapMode = 33648
	WrapRepeat         WrapMode = 10497
)

// ParseWrapMode maps a wire code to a WrapMode.
func ParseWrapMode(code uint64) (WrapMode, bool) {
	switch code {
	case uint64(WrapClampToEdge), uint64(WrapMirroredRepeat), uint64(WrapRepeat):
		return WrapMode(code), true
	}
	return 0, false
}

func (w WrapMode) String() string {
	switch w {
	case WrapClampToEdge:
		return "ClampToEdge"
	case WrapMirroredRepeat:
		return "MirroredRepeat"
	case WrapRepeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(w))
	}
}

// PrimitiveMode is the topology of a mesh primitive. The values are the wire codes.
type PrimitiveMode uint8

const (
	ModePoints PrimitiveMode = iota
	ModeLines
	ModeLineLoop
	ModeLineStrip
	ModeTriangles
	ModeTriangleStrip
	ModeTriangleFan
)

var primitiveModeNames = []string{
	"Points", "Lines", "LineLoop", "LineStrip", "Triangles", "TriangleStrip", "TriangleFan",
}

// ParsePrimitiveMode maps a wire code to a PrimitiveMode.
func ParsePrimitiveMode(code uint64) (PrimitiveMode, bool) {
	if code <= uint64(ModeTriangleFan) {
		return PrimitiveMode(code), true
	}
	return 0, false
}

func (m PrimitiveMode) String() string { return name(primitiveModeNames, m) }

// AlphaMode controls how the alpha value of a material is interpreted.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

var alphaModeNames = []string{"OPAQUE", "MASK", "BLEND"}

func (a AlphaMode) String() string { return name(alphaModeNames, a) }

// Interpolation is the keyframe interpolation of an animation sampler.
type Interpolation uint8

const (
	InterpolationLinear Interpolation = iota
	InterpolationStep
	InterpolationCubicSpline
)

var interpolationNames = []string{"LINEAR", "STEP", "CUBICSPLINE"}

func (i Interpolation) String() string { return name(interpolationNames, i) }

// TargetPath is the node property an animation channel drives.
type TargetPath uint8

const (
	PathTranslation TargetPath = iota
	PathRotation
	PathScale
	PathWeights
)

var targetPathNames = []string{"translation", "rotation", "scale", "weights"}

func (p TargetPath) String() string { return name(targetPathNames, p) }

// CameraType selects the projection of a camera.
type CameraType uint8

const (
	CameraPerspective CameraType = iota
	CameraOrthographic
)

var cameraTypeNames = []string{"perspective", "orthographic"}

func (c CameraType) String() string { return name(cameraTypeNames, c) }

// LightType is the kind of a KHR_lights_punctual light.
type LightType uint8

const (
	LightPoint LightType = iota
	LightDirectional
	LightSpot
)

var lightTypeNames = []string{"point", "directional", "spot"}

func (l LightType) String() string { return name(lightTypeNames, l) }

// CompressionMode is the EXT_meshopt_compression encoding of a buffer view.
type CompressionMode uint8

const (
	MeshoptAttributes CompressionMode = iota
	MeshoptTriangles
	MeshoptIndices
)

var compressionModeNames = []string{"ATTRIBUTES", "TRIANGLES", "INDICES"}

func (c CompressionMode) String() string { return name(compressionModeNames, c) }

// CompressionFilter is the EXT_meshopt_compression post-decode filter.
type CompressionFilter uint8

const (
	MeshoptFilterNone CompressionFilter = iota
	MeshoptFilterOctahedral
	MeshoptFilterQuaternion
	MeshoptFilterExponential
)

var compressionFilterNames = []string{"NONE", "OCTAHEDRAL", "QUATERNION", "EXPONENTIAL"}

func (c CompressionFilter) String() string { return name(compressionFilterNames, c) }

// name returns the wire name of a string enum value.
func name[T ~uint8](names []string, v T) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(v))
}

// decodeName decodes a string enum using its table of wire names.
func decodeName[T ~uint8](d *Decoder, what string, names []string) (T, error) {
	tok, off, err := d.token()
	if err != nil {
		return 0, err
	}
	s, ok := tok.(string)
	if !ok {
		return 0, d.unexpected(off, what, tok)
	}
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, d.errorAt(off, ErrInvalidValue, fmt.Sprintf("invalid %s %q", what, s))
}

// decodeCode decodes an integer enum using parse as its lookup table.
func decodeCode[T any](d *Decoder, what string, parse func(uint64) (T, bool)) (T, error) {
	var zero T
	v, off, err := d.uint(what)
	if err != nil {
		return zero, err
	}
	out, ok := parse(v)
	if !ok {
		return zero, d.errorAt(off, ErrInvalidValue, fmt.Sprintf("invalid %s %d", what, v))
	}
	return out, nil
}
