package gltf

import "encoding/json"

// Extension names recognized by DefaultExtensions.
const (
	ExtLightsPunctual            = "KHR_lights_punctual"
	ExtMaterialsEmissiveStrength = "KHR_materials_emissive_strength"
	ExtMaterialsIOR              = "KHR_materials_ior"
	ExtMaterialsSheen            = "KHR_materials_sheen"
	ExtMaterialsUnlit            = "KHR_materials_unlit"
	ExtMaterialsSpecular         = "KHR_materials_specular"
	ExtMaterialsTransmission     = "KHR_materials_transmission"
	ExtMaterialsVariants         = "KHR_materials_variants"
	ExtTextureBasisu             = "KHR_texture_basisu"
	ExtTextureTransform          = "KHR_texture_transform"
	ExtMeshGPUInstancing         = "EXT_mesh_gpu_instancing"
	ExtMeshoptCompression        = "EXT_meshopt_compression"
	ExtLOD                       = "MSFT_lod"
	ExtScreenCoverage            = "MSFT_screencoverage"
)

// KnownExtensions lists every extension name DefaultExtensions decodes.
var KnownExtensions = []string{
	ExtLightsPunctual,
	ExtMaterialsEmissiveStrength,
	ExtMaterialsIOR,
	ExtMaterialsSheen,
	ExtMaterialsUnlit,
	ExtMaterialsSpecular,
	ExtMaterialsTransmission,
	ExtMaterialsVariants,
	ExtTextureBasisu,
	ExtTextureTransform,
	ExtMeshGPUInstancing,
	ExtMeshoptCompression,
	ExtLOD,
	ExtScreenCoverage,
}

// ExtensionSlot is a container for the extensions attached to one JSON object.
//
// DecodeExtension is called once per key of the object's "extensions" member.
// It reports false, without consuming the value, for keys it does not handle.
type ExtensionSlot interface {
	DecodeExtension(d *Decoder, key string) (bool, error)
}

// ExtrasSlot is a container for the "extras" member of a node.
// DecodeExtras must consume exactly one value.
type ExtrasSlot interface {
	DecodeExtras(d *Decoder) error
}

// ExtensionSet constructs a fresh container for every attachment point.
// Containers are created for each object whether or not it has extensions.
type ExtensionSet interface {
	Root() ExtensionSlot
	Texture() ExtensionSlot
	TextureInfo() ExtensionSlot
	Material() ExtensionSlot
	Buffer() ExtensionSlot
	BufferView() ExtensionSlot
	Node() ExtensionSlot
	NodeExtras() ExtrasSlot
}

var (
	// DefaultExtensions decodes every extension in KnownExtensions.
	DefaultExtensions ExtensionSet = defaultSet{}

	// NoExtensions ignores all extensions and extras.
	NoExtensions ExtensionSet = noneSet{}
)

// Empty is the container used by NoExtensions. It skips everything.
type Empty struct{}

func (Empty) DecodeExtension(*Decoder, string) (bool, error) { return false, nil }

func (Empty) DecodeExtras(d *Decoder) error { return d.Skip() }

type noneSet struct{}

func (noneSet) Root() ExtensionSlot        { return Empty{} }
func (noneSet) Texture() ExtensionSlot     { return Empty{} }
func (noneSet) TextureInfo() ExtensionSlot { return Empty{} }
func (noneSet) Material() ExtensionSlot    { return Empty{} }
func (noneSet) Buffer() ExtensionSlot      { return Empty{} }
func (noneSet) BufferView() ExtensionSlot  { return Empty{} }
func (noneSet) Node() ExtensionSlot        { return Empty{} }
func (noneSet) NodeExtras() ExtrasSlot     { return Empty{} }

type defaultSet struct{}

func (defaultSet) Root() ExtensionSlot        { return &RootExtensions{} }
func (defaultSet) Texture() ExtensionSlot     { return &TextureExtensions{} }
func (defaultSet) TextureInfo() ExtensionSlot { return &TextureInfoExtensions{} }
func (defaultSet) Material() ExtensionSlot    { return &MaterialExtensions{} }
func (defaultSet) Buffer() ExtensionSlot      { return &BufferExtensions{} }
func (defaultSet) BufferView() ExtensionSlot  { return &BufferViewExtensions{} }
func (defaultSet) Node() ExtensionSlot        { return &NodeExtensions{} }
func (defaultSet) NodeExtras() ExtrasSlot     { return &NodeExtras{} }

// MeshoptProvider is implemented by buffer view containers that carry
// EXT_meshopt_compression data.
type MeshoptProvider interface {
	MeshoptCompression() *MeshoptCompression
}

// Meshopt returns the view's EXT_meshopt_compression data, or nil when the
// view is not compressed or its container does not provide it.
func (v *BufferView) Meshopt() *MeshoptCompression {
	if p, ok := v.Extensions.(MeshoptProvider); ok {
		return p.MeshoptCompression()
	}
	return nil
}

// RootExtensions holds the document-level extensions.
type RootExtensions struct {
	LightsPunctual    *LightsPunctual
	MaterialsVariants *MaterialsVariants
}

func (e *RootExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	var err error
	switch key {
	case ExtLightsPunctual:
		e.LightsPunctual, err = d.lightsPunctual()
	case ExtMaterialsVariants:
		e.MaterialsVariants, err = d.materialsVariants()
	default:
		return false, nil
	}
	return true, err
}

// TextureExtensions holds texture extensions.
type TextureExtensions struct {
	Basisu *TextureBasisu
}

func (e *TextureExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	if key != ExtTextureBasisu {
		return false, nil
	}
	var err error
	e.Basisu, err = d.textureBasisu()
	return true, err
}

// TextureInfoExtensions holds extensions of texture references.
type TextureInfoExtensions struct {
	Transform *TextureTransform
}

func (e *TextureInfoExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	if key != ExtTextureTransform {
		return false, nil
	}
	var err error
	e.Transform, err = d.textureTransform()
	return true, err
}

// MaterialExtensions holds material extensions.
type MaterialExtensions struct {
	EmissiveStrength *EmissiveStrength
	IOR              *IOR
	Sheen            *Sheen
	Unlit            *Unlit
	Specular         *Specular
	Transmission     *Transmission
}

func (e *MaterialExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	var err error
	switch key {
	case ExtMaterialsEmissiveStrength:
		e.EmissiveStrength, err = d.emissiveStrength()
	case ExtMaterialsIOR:
		e.IOR, err = d.ior()
	case ExtMaterialsSheen:
		e.Sheen, err = d.sheen()
	case ExtMaterialsUnlit:
		e.Unlit = &Unlit{}
		err = d.Skip()
	case ExtMaterialsSpecular:
		e.Specular, err = d.specular()
	case ExtMaterialsTransmission:
		e.Transmission, err = d.transmission()
	default:
		return false, nil
	}
	return true, err
}

// BufferExtensions holds buffer extensions.
type BufferExtensions struct {
	Meshopt *MeshoptBuffer
}

func (e *BufferExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	if key != ExtMeshoptCompression {
		return false, nil
	}
	var err error
	e.Meshopt, err = d.meshoptBuffer()
	return true, err
}

// BufferViewExtensions holds buffer view extensions.
type BufferViewExtensions struct {
	Meshopt *MeshoptCompression
}

func (e *BufferViewExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	if key != ExtMeshoptCompression {
		return false, nil
	}
	var err error
	e.Meshopt, err = d.meshoptCompression()
	return true, err
}

// MeshoptCompression implements MeshoptProvider.
func (e *BufferViewExtensions) MeshoptCompression() *MeshoptCompression {
	return e.Meshopt
}

// NodeExtensions holds node extensions.
type NodeExtensions struct {
	GPUInstancing *MeshGPUInstancing
	LOD           *LOD
	Light         *NodeLight
}

func (e *NodeExtensions) DecodeExtension(d *Decoder, key string) (bool, error) {
	var err error
	switch key {
	case ExtMeshGPUInstancing:
		e.GPUInstancing, err = d.meshGPUInstancing()
	case ExtLOD:
		e.LOD, err = d.lod()
	case ExtLightsPunctual:
		e.Light, err = d.nodeLight()
	default:
		return false, nil
	}
	return true, err
}

// NodeExtras holds the extras of a node. Raw keeps the whole value.
type NodeExtras struct {
	ScreenCoverage []float32 // MSFT_screencoverage, one entry per LOD level
	Raw            json.RawMessage
}

func (e *NodeExtras) DecodeExtras(d *Decoder) error {
	off := d.Offset()
	raw, err := d.Raw()
	if err != nil {
		return err
	}
	e.Raw = raw
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	sub := newSubDecoder(d.src, raw, off, d.set)
	return sub.Object(func(key string) error {
		if key != ExtScreenCoverage {
			return sub.Skip()
		}
		var err error
		e.ScreenCoverage, err = sub.Float32s()
		return err
	})
}
