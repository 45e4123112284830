// Package gltf provides a reader for glTF 2.0 scene documents.
// It parses both the JSON (.gltf) and binary container (.glb) variants into
// an index-based document model with pluggable extension containers.
package gltf

import (
	"math"
	"sort"
)

// Document is the root of a parsed glTF file.
// Entities reference each other by index into the slices below; indices are
// not validated when loading.
type Document struct {
	Asset              Asset
	ExtensionsUsed     []string
	ExtensionsRequired []string

	Buffers     []Buffer
	BufferViews []BufferView
	Accessors   []Accessor
	Meshes      []Mesh
	Materials   []Material
	Textures    []Texture
	Images      []Image
	Samplers    []Sampler
	Nodes       []Node
	Scenes      []Scene
	Skins       []Skin
	Animations  []Animation
	Cameras     []Camera

	Scene      *int // Default scene (nil when absent)
	Extensions ExtensionSlot
}

// Asset holds metadata about the glTF asset.
type Asset struct {
	Version    string
	MinVersion string
	Generator  string
	Copyright  string
}

// Buffer is a blob of binary data. Its content is loaded by the caller.
type Buffer struct {
	URI        string // Empty for the GLB binary chunk
	ByteLength int
	Name       string
	Extensions ExtensionSlot
}

// BufferView is a byte range of a buffer.
type BufferView struct {
	Buffer     int
	ByteOffset int
	ByteLength int
	ByteStride int // 0 when tightly packed
	Target     int // 0 when no hint is given
	Name       string
	Extensions ExtensionSlot
}

// Accessor describes how to read a buffer view as an array of typed elements.
type Accessor struct {
	BufferView    *int // nil for accessors made only of sparse values
	ByteOffset    int
	ComponentType ComponentType
	Normalized    bool
	Count         int
	Type          AccessorType
	Min           []float64 // Length depends on Type
	Max           []float64
	Sparse        *Sparse
	Name          string
}

// ElementSize returns the tightly packed size of one element in bytes.
func (a *Accessor) ElementSize() int {
	return a.ComponentType.Size() * a.Type.Components()
}

// ByteLength returns the number of bytes the accessor spans inside view:
// Count times the view stride, or times the element size when the view has none.
// The result saturates at math.MaxInt.
func (a *Accessor) ByteLength(view *BufferView) int {
	stride := a.ElementSize()
	if view != nil && view.ByteStride != 0 {
		stride = view.ByteStride
	}
	if a.Count > 0 && stride > math.MaxInt/a.Count {
		return math.MaxInt
	}
	return a.Count * stride
}

// Sparse describes values that override an accessor's base data.
type Sparse struct {
	Count   int
	Indices SparseIndices
	Values  SparseValues
}

// SparseIndices locates the indices of the overridden elements.
type SparseIndices struct {
	BufferView    int
	ByteOffset    int
	ComponentType ComponentType
}

// SparseValues locates the overriding element values.
type SparseValues struct {
	BufferView int
	ByteOffset int
}

// Mesh is a set of primitives rendered together.
type Mesh struct {
	Primitives []Primitive
	Weights    []float32 // Default morph target weights
	Name       string
}

// Primitive is a piece of geometry with a single material.
type Primitive struct {
	Attributes Attributes
	Indices    *int
	Material   *int
	Mode       PrimitiveMode // Default is ModeTriangles
	Targets    []Attributes  // Morph targets
}

// Attributes maps vertex attribute semantics to accessor indices.
type Attributes struct {
	Position  *int
	Normal    *int
	Tangent   *int
	TexCoord0 *int
	TexCoord1 *int
	Joints0   *int
	Weights0  *int
	Other     map[string]int // Any other semantic, e.g. COLOR_0
}

// Attribute names with a dedicated field in Attributes.
const (
	AttrPosition  = "POSITION"
	AttrNormal    = "NORMAL"
	AttrTangent   = "TANGENT"
	AttrTexCoord0 = "TEXCOORD_0"
	AttrTexCoord1 = "TEXCOORD_1"
	AttrJoints0   = "JOINTS_0"
	AttrWeights0  = "WEIGHTS_0"
)

// Get returns the accessor index for the semantic name.
func (a *Attributes) Get(semantic string) (int, bool) {
	var idx *int
	switch semantic {
	case AttrPosition:
		idx = a.Position
	case AttrNormal:
		idx = a.Normal
	case AttrTangent:
		idx = a.Tangent
	case AttrTexCoord0:
		idx = a.TexCoord0
	case AttrTexCoord1:
		idx = a.TexCoord1
	case AttrJoints0:
		idx = a.Joints0
	case AttrWeights0:
		idx = a.Weights0
	default:
		i, ok := a.Other[semantic]
		return i, ok
	}
	if idx == nil {
		return 0, false
	}
	return *idx, true
}

// Names returns the semantics present in a, the dedicated ones first and
// the rest sorted.
func (a *Attributes) Names() []string {
	var names []string
	for _, n := range []string{AttrPosition, AttrNormal, AttrTangent, AttrTexCoord0, AttrTexCoord1, AttrJoints0, AttrWeights0} {
		if _, ok := a.Get(n); ok {
			names = append(names, n)
		}
	}
	other := make([]string, 0, len(a.Other))
	for n := range a.Other {
		other = append(other, n)
	}
	sort.Strings(other)
	return append(names, other...)
}

// Material describes the appearance of a primitive using the metallic-roughness model.
type Material struct {
	PBRMetallicRoughness PBRMetallicRoughness
	NormalTexture        *NormalTextureInfo
	OcclusionTexture     *OcclusionTextureInfo
	EmissiveTexture      *TextureInfo
	EmissiveFactor       [3]float32
	AlphaMode            AlphaMode
	AlphaCutoff          float32 // Default is 0.5
	DoubleSided          bool
	Name                 string
	Extensions           ExtensionSlot
}

// PBRMetallicRoughness holds the metallic-roughness parameters of a material.
type PBRMetallicRoughness struct {
	BaseColorFactor          [4]float32 // Default is [1, 1, 1, 1]
	BaseColorTexture         *TextureInfo
	MetallicFactor           float32 // Default is 1
	RoughnessFactor          float32 // Default is 1
	MetallicRoughnessTexture *TextureInfo
}

// TextureInfo references a texture and the UV set used to sample it.
type TextureInfo struct {
	Index      int
	TexCoord   int
	Extensions ExtensionSlot
}

// NormalTextureInfo is a TextureInfo with a normal scale.
type NormalTextureInfo struct {
	TextureInfo
	Scale float32 // Default is 1
}

// OcclusionTextureInfo is a TextureInfo with an occlusion strength.
type OcclusionTextureInfo struct {
	TextureInfo
	Strength float32 // Default is 1
}

// Texture pairs an image with a sampler.
type Texture struct {
	Sampler    *int
	Source     *int
	Name       string
	Extensions ExtensionSlot
}

// Image is image data referenced by URI or stored in a buffer view.
type Image struct {
	URI        string
	MimeType   string
	BufferView *int
	Name       string
}

// Sampler holds texture filtering and wrapping modes.
type Sampler struct {
	MagFilter FilterMode // 0 when unset
	MinFilter MinFilter  // Mode is 0 when unset
	WrapS     WrapMode   // Default is WrapRepeat
	WrapT     WrapMode   // Default is WrapRepeat
	Name      string
}

// Node is an element of the scene hierarchy.
type Node struct {
	Camera      *int
	Mesh        *int
	Skin        *int
	Children    []int
	Matrix      *[16]float32 // Column-major
	Translation *[3]float32
	Rotation    *[4]float32 // Quaternion X, Y, Z, W
	Scale       *[3]float32
	Weights     []float32
	Name        string
	Extensions  ExtensionSlot
	Extras      ExtrasSlot
}

// Scene is a set of root nodes.
type Scene struct {
	Nodes []int
	Name  string
}

// Skin binds joints to a mesh for vertex skinning.
type Skin struct {
	InverseBindMatrices *int
	Skeleton            *int
	Joints              []int
	Name                string
}

// Animation is a set of keyframe channels.
type Animation struct {
	Channels []Channel
	Samplers []AnimationSampler
	Name     string
}

// Channel connects an animation sampler to a node property.
type Channel struct {
	Sampler int
	Target  Target
}

// Target is the node property animated by a channel.
type Target struct {
	Node *int
	Path TargetPath
}

// AnimationSampler combines keyframe times and values.
type AnimationSampler struct {
	Input         int // Accessor with keyframe times
	Output        int // Accessor with keyframe values
	Interpolation Interpolation
}

// Camera is a projection attached to a node.
type Camera struct {
	Type         CameraType
	Perspective  *Perspective
	Orthographic *Orthographic
	Name         string
}

// Perspective holds perspective projection parameters.
type Perspective struct {
	YFov        float32
	ZNear       float32
	ZFar        *float32 // nil for an infinite projection
	AspectRatio *float32
}

// Orthographic holds orthographic projection parameters.
type Orthographic struct {
	XMag  float32
	YMag  float32
	ZFar  float32
	ZNear float32
}
