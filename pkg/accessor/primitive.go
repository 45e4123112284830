package accessor

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gltfkit/pkg/gltf"
)

// PrimitiveReader decodes the standard vertex attributes of one primitive.
// Every method returns nil and no error when the primitive lacks the attribute.
type PrimitiveReader struct {
	doc       *gltf.Document
	Primitive *gltf.Primitive
	views     map[int][]byte
	log       *zap.Logger
}

// Option configures a PrimitiveReader.
type Option func(*PrimitiveReader)

// WithLogger sets the logger that receives clamping warnings.
func WithLogger(log *zap.Logger) Option {
	return func(r *PrimitiveReader) {
		if log != nil {
			r.log = log
		}
	}
}

// NewPrimitiveReader returns a reader for prim, whose accessors belong to doc.
// views maps buffer view indices to their bytes.
func NewPrimitiveReader(doc *gltf.Document, prim *gltf.Primitive, views map[int][]byte, opts ...Option) *PrimitiveReader {
	r := &PrimitiveReader{
		doc:       doc,
		Primitive: prim,
		views:     views,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// slice resolves the accessor at idx, logging when its range was clamped.
func (r *PrimitiveReader) slice(attr string, idx int) (Slice, *gltf.Accessor, error) {
	if idx < 0 || idx >= len(r.doc.Accessors) {
		return Slice{}, nil, &IndexError{Kind: "accessor", Index: idx}
	}
	acc := &r.doc.Accessors[idx]
	s, err := Resolve(r.doc, r.views, acc)
	if err != nil {
		return Slice{}, nil, err
	}
	if s.Clamped {
		r.log.Warn("accessor range clamped to buffer view",
			zap.String("attribute", attr),
			zap.Int("accessor", idx),
			zap.Int("requested", s.Requested),
			zap.Int("available", len(s.Data)))
	}
	return s, acc, nil
}

func read[T any](r *PrimitiveReader, attr string, idx *int, decode func(Slice, *gltf.Accessor) ([]T, error)) ([]T, error) {
	if idx == nil {
		return nil, nil
	}
	s, acc, err := r.slice(attr, *idx)
	if err != nil {
		return nil, err
	}
	return decode(s, acc)
}

// Indices returns the vertex indices.
func (r *PrimitiveReader) Indices() ([]uint32, error) {
	return read(r, "indices", r.Primitive.Indices, U32)
}

// Positions returns the POSITION attribute.
func (r *PrimitiveReader) Positions() ([][3]float32, error) {
	return read(r, gltf.AttrPosition, r.Primitive.Attributes.Position, F32x3)
}

// Normals returns the NORMAL attribute.
func (r *PrimitiveReader) Normals() ([][3]float32, error) {
	return read(r, gltf.AttrNormal, r.Primitive.Attributes.Normal, F32x3)
}

// Tangents returns the TANGENT attribute. W holds the bitangent sign.
func (r *PrimitiveReader) Tangents() ([][4]float32, error) {
	return read(r, gltf.AttrTangent, r.Primitive.Attributes.Tangent, F32x4)
}

// UVs returns the TEXCOORD_0 attribute.
func (r *PrimitiveReader) UVs() ([][2]float32, error) {
	return read(r, gltf.AttrTexCoord0, r.Primitive.Attributes.TexCoord0, F32x2)
}

// SecondUVs returns the TEXCOORD_1 attribute.
func (r *PrimitiveReader) SecondUVs() ([][2]float32, error) {
	return read(r, gltf.AttrTexCoord1, r.Primitive.Attributes.TexCoord1, F32x2)
}

// Joints returns the JOINTS_0 attribute.
func (r *PrimitiveReader) Joints() ([][4]uint32, error) {
	return read(r, gltf.AttrJoints0, r.Primitive.Attributes.Joints0, U32x4)
}

// Weights returns the WEIGHTS_0 attribute.
func (r *PrimitiveReader) Weights() ([][4]float32, error) {
	return read(r, gltf.AttrWeights0, r.Primitive.Attributes.Weights0, F32x4)
}
