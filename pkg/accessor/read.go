package accessor

import (
	"encoding/binary"
	"math"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// Component conversions. Signed values are clamped at -1 because the most
// negative integer maps slightly below it.

func float(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func snorm8(b byte) float32 {
	return max(float32(int8(b))/127, -1)
}

func snorm16(b []byte) float32 {
	return max(float32(int16(binary.LittleEndian.Uint16(b)))/32767, -1)
}

func unorm8(b byte) float32 {
	return float32(b) / 255
}

func unorm16(b []byte) float32 {
	return float32(binary.LittleEndian.Uint16(b)) / 65535
}

func ushort(b []byte) uint16 {
	return binary.LittleEndian.Uint16(b)
}

// elements decodes every element of data that starts a multiple of stride
// bytes in and has at least size bytes available.
func elements[T any](data []byte, stride, size int, elem func(b []byte) T) []T {
	if stride < size {
		stride = size
	}
	if len(data) < size {
		return []T{}
	}
	out := make([]T, (len(data)-size)/stride+1)
	for i := range out {
		out[i] = elem(data[i*stride:])
	}
	return out
}

func unsupported(site string, s Slice, acc *gltf.Accessor) error {
	return &UnsupportedError{
		Site:          site,
		ComponentType: acc.ComponentType,
		Normalized:    acc.Normalized,
		Stride:        s.Stride,
	}
}

// F32 decodes a scalar float accessor.
func F32(s Slice, acc *gltf.Accessor) ([]float32, error) {
	if acc.ComponentType == gltf.ComponentFloat && !acc.Normalized && s.Stride == 0 {
		return elements(s.Data, 4, 4, float), nil
	}
	return nil, unsupported("F32", s, acc)
}

// F32x2 decodes a two component accessor such as texture coordinates.
func F32x2(s Slice, acc *gltf.Accessor) ([][2]float32, error) {
	ct, norm, stride := acc.ComponentType, acc.Normalized, s.Stride
	switch {
	case ct == gltf.ComponentFloat && !norm && (stride == 0 || stride == 8):
		return elements(s.Data, 8, 8, func(b []byte) [2]float32 {
			return [2]float32{float(b), float(b[4:])}
		}), nil
	case ct == gltf.ComponentFloat && !norm && stride > 8:
		return elements(s.Data, stride, 8, func(b []byte) [2]float32 {
			return [2]float32{float(b), float(b[4:])}
		}), nil
	case ct == gltf.ComponentUnsignedShort && norm && stride >= 4:
		return elements(s.Data, stride, 4, func(b []byte) [2]float32 {
			return [2]float32{unorm16(b), unorm16(b[2:])}
		}), nil
	}
	return nil, unsupported("F32x2", s, acc)
}

// F32x3 decodes a three component accessor such as positions or normals.
func F32x3(s Slice, acc *gltf.Accessor) ([][3]float32, error) {
	ct, norm, stride := acc.ComponentType, acc.Normalized, s.Stride
	switch {
	case ct == gltf.ComponentFloat && !norm && (stride == 0 || stride == 12):
		return elements(s.Data, 12, 12, func(b []byte) [3]float32 {
			return [3]float32{float(b), float(b[4:]), float(b[8:])}
		}), nil
	case ct == gltf.ComponentShort && norm && stride >= 6:
		return elements(s.Data, stride, 6, func(b []byte) [3]float32 {
			return [3]float32{snorm16(b), snorm16(b[2:]), snorm16(b[4:])}
		}), nil
	case ct == gltf.ComponentUnsignedShort && !norm && stride == 8:
		return elements(s.Data, 8, 6, func(b []byte) [3]float32 {
			return [3]float32{float32(ushort(b)), float32(ushort(b[2:])), float32(ushort(b[4:]))}
		}), nil
	case ct == gltf.ComponentUnsignedShort && norm && stride == 8:
		return elements(s.Data, 8, 6, func(b []byte) [3]float32 {
			return [3]float32{unorm16(b), unorm16(b[2:]), unorm16(b[4:])}
		}), nil
	case ct == gltf.ComponentByte && norm && stride >= 3:
		return elements(s.Data, stride, 3, func(b []byte) [3]float32 {
			return [3]float32{snorm8(b[0]), snorm8(b[1]), snorm8(b[2])}
		}), nil
	}
	return nil, unsupported("F32x3", s, acc)
}

// F32x4 decodes a four component accessor such as tangents, colors or weights.
func F32x4(s Slice, acc *gltf.Accessor) ([][4]float32, error) {
	ct, norm, stride := acc.ComponentType, acc.Normalized, s.Stride
	switch {
	case ct == gltf.ComponentFloat && !norm && stride == 0:
		return elements(s.Data, 16, 16, func(b []byte) [4]float32 {
			return [4]float32{float(b), float(b[4:]), float(b[8:]), float(b[12:])}
		}), nil
	case ct == gltf.ComponentUnsignedByte && norm && stride == 4:
		return elements(s.Data, 4, 4, func(b []byte) [4]float32 {
			return [4]float32{unorm8(b[0]), unorm8(b[1]), unorm8(b[2]), unorm8(b[3])}
		}), nil
	case ct == gltf.ComponentShort && norm && stride == 0:
		return elements(s.Data, 8, 8, func(b []byte) [4]float32 {
			return [4]float32{snorm16(b), snorm16(b[2:]), snorm16(b[4:]), snorm16(b[6:])}
		}), nil
	}
	return nil, unsupported("F32x4", s, acc)
}

// U32 decodes an index accessor, widening unsigned shorts.
func U32(s Slice, acc *gltf.Accessor) ([]uint32, error) {
	ct, norm, stride := acc.ComponentType, acc.Normalized, s.Stride
	switch {
	case ct == gltf.ComponentUnsignedShort && !norm && stride == 0:
		return elements(s.Data, 2, 2, func(b []byte) uint32 {
			return uint32(ushort(b))
		}), nil
	case ct == gltf.ComponentUnsignedInt && !norm && stride == 0:
		return elements(s.Data, 4, 4, binary.LittleEndian.Uint32), nil
	}
	return nil, unsupported("U32", s, acc)
}

// U32x4 decodes a four component integer accessor such as joint indices,
// widening unsigned bytes without scaling.
func U32x4(s Slice, acc *gltf.Accessor) ([][4]uint32, error) {
	if acc.ComponentType == gltf.ComponentUnsignedByte && !acc.Normalized && (s.Stride == 0 || s.Stride == 4) {
		return elements(s.Data, 4, 4, func(b []byte) [4]uint32 {
			return [4]uint32{uint32(b[0]), uint32(b[1]), uint32(b[2]), uint32(b[3])}
		}), nil
	}
	return nil, unsupported("U32x4", s, acc)
}
