package gltf

import "math"

// LightsPunctual is the document-level KHR_lights_punctual list of lights.
type LightsPunctual struct {
	Lights []Light
}

// Light is a punctual light source.
type Light struct {
	Type      LightType
	Color     [3]float32 // Default is [1, 1, 1]
	Intensity float32    // Default is 1
	Range     *float32   // nil for infinite range
	Spot      *Spot
	Name      string
}

// Spot holds the cone angles of a spot light, in radians.
type Spot struct {
	InnerConeAngle float32 // Default is 0
	OuterConeAngle float32 // Default is π/4
}

// NodeLight attaches a light from LightsPunctual to a node.
type NodeLight struct {
	Light int
}

// MaterialsVariants is the document-level KHR_materials_variants list.
type MaterialsVariants struct {
	Variants []MaterialVariant
}

// MaterialVariant names one material variant.
type MaterialVariant struct {
	Name string
}

// TextureBasisu points a texture at a KTX2 image with Basis Universal supercompression.
type TextureBasisu struct {
	Source int
}

// TextureTransform offsets, rotates and scales texture coordinates.
type TextureTransform struct {
	Offset   [2]float32
	Rotation float32    // Radians, counter-clockwise
	Scale    [2]float32 // Default is [1, 1]
	TexCoord *int       // Overrides TextureInfo.TexCoord when set
}

// EmissiveStrength scales a material's emissive factor.
type EmissiveStrength struct {
	EmissiveStrength float32 // Default is 1
}

// IOR is the index of refraction of a material.
type IOR struct {
	IOR float32 // Default is 1.5
}

// Sheen adds a cloth-like sheen layer to a material.
type Sheen struct {
	ColorFactor      [3]float32
	ColorTexture     *TextureInfo
	RoughnessFactor  float32
	RoughnessTexture *TextureInfo
}

// Unlit marks a material as constantly shaded.
type Unlit struct{}

// Specular controls the strength and color of specular reflection.
type Specular struct {
	Factor       float32 // Default is 1
	Texture      *TextureInfo
	ColorFactor  [3]float32 // Default is [1, 1, 1]
	ColorTexture *TextureInfo
}

// Transmission makes a material transmit light through its surface.
type Transmission struct {
	Factor  float32
	Texture *TextureInfo
}

// MeshoptBuffer marks a buffer that only exists for meshopt fallback data.
type MeshoptBuffer struct {
	Fallback bool
}

// MeshoptCompression describes a buffer view stored as a meshopt-compressed blob.
// When present, ByteStride and Count replace the view's own layout.
type MeshoptCompression struct {
	Buffer     int
	ByteOffset int
	ByteLength int
	ByteStride int
	Mode       CompressionMode
	Count      int
	Filter     CompressionFilter // Default is MeshoptFilterNone
}

// MeshGPUInstancing lists per-instance transform accessors for a node's mesh.
type MeshGPUInstancing struct {
	Translation *int
	Rotation    *int
	Scale       *int
	Other       map[string]int // Custom per-instance attributes
}

// LOD lists the nodes used as lower levels of detail, highest quality first.
type LOD struct {
	IDs []int
}

func (d *Decoder) lightsPunctual() (*LightsPunctual, error) {
	out := &LightsPunctual{}
	err := d.object(ExtLightsPunctual, func(key string) error {
		if key != "lights" {
			return d.Skip()
		}
		return d.Array(func(int) error {
			l, err := d.light()
			out.Lights = append(out.Lights, l)
			return err
		})
	})
	return out, err
}

func (d *Decoder) light() (Light, error) {
	l := Light{Color: [3]float32{1, 1, 1}, Intensity: 1}
	err := d.object("light", func(key string) error {
		var err error
		switch key {
		case "type":
			l.Type, err = decodeName[LightType](d, "light type", lightTypeNames)
		case "color":
			err = d.Fixed(l.Color[:])
		case "intensity":
			l.Intensity, err = d.Float32()
		case "range":
			var r float32
			r, err = d.Float32()
			l.Range = &r
		case "spot":
			l.Spot, err = d.spot()
		case "name":
			l.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "type")
	return l, err
}

func (d *Decoder) spot() (*Spot, error) {
	s := &Spot{OuterConeAngle: math.Pi / 4}
	err := d.object("spot", func(key string) error {
		var err error
		switch key {
		case "innerConeAngle":
			s.InnerConeAngle, err = d.Float32()
		case "outerConeAngle":
			s.OuterConeAngle, err = d.Float32()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func (d *Decoder) nodeLight() (*NodeLight, error) {
	l := &NodeLight{}
	err := d.object(ExtLightsPunctual, func(key string) error {
		if key != "light" {
			return d.Skip()
		}
		var err error
		l.Light, err = d.Uint()
		return err
	}, "light")
	return l, err
}

func (d *Decoder) materialsVariants() (*MaterialsVariants, error) {
	out := &MaterialsVariants{}
	err := d.object(ExtMaterialsVariants, func(key string) error {
		if key != "variants" {
			return d.Skip()
		}
		return d.Array(func(int) error {
			var v MaterialVariant
			err := d.object("variant", func(key string) error {
				if key != "name" {
					return d.Skip()
				}
				var err error
				v.Name, err = d.Text()
				return err
			}, "name")
			out.Variants = append(out.Variants, v)
			return err
		})
	})
	return out, err
}

func (d *Decoder) textureBasisu() (*TextureBasisu, error) {
	b := &TextureBasisu{}
	err := d.object(ExtTextureBasisu, func(key string) error {
		if key != "source" {
			return d.Skip()
		}
		var err error
		b.Source, err = d.Uint()
		return err
	}, "source")
	return b, err
}

func (d *Decoder) textureTransform() (*TextureTransform, error) {
	t := &TextureTransform{Scale: [2]float32{1, 1}}
	err := d.object(ExtTextureTransform, func(key string) error {
		var err error
		switch key {
		case "offset":
			err = d.Fixed(t.Offset[:])
		case "rotation":
			t.Rotation, err = d.Float32()
		case "scale":
			err = d.Fixed(t.Scale[:])
		case "texCoord":
			t.TexCoord, err = d.Index()
		default:
			err = d.Skip()
		}
		return err
	})
	return t, err
}

func (d *Decoder) emissiveStrength() (*EmissiveStrength, error) {
	e := &EmissiveStrength{EmissiveStrength: 1}
	err := d.object(ExtMaterialsEmissiveStrength, func(key string) error {
		if key != "emissiveStrength" {
			return d.Skip()
		}
		var err error
		e.EmissiveStrength, err = d.Float32()
		return err
	})
	return e, err
}

func (d *Decoder) ior() (*IOR, error) {
	v := &IOR{IOR: 1.5}
	err := d.object(ExtMaterialsIOR, func(key string) error {
		if key != "ior" {
			return d.Skip()
		}
		var err error
		v.IOR, err = d.Float32()
		return err
	})
	return v, err
}

func (d *Decoder) sheen() (*Sheen, error) {
	s := &Sheen{}
	err := d.object(ExtMaterialsSheen, func(key string) error {
		var err error
		switch key {
		case "sheenColorFactor":
			err = d.Fixed(s.ColorFactor[:])
		case "sheenColorTexture":
			s.ColorTexture, err = d.TextureInfo()
		case "sheenRoughnessFactor":
			s.RoughnessFactor, err = d.Float32()
		case "sheenRoughnessTexture":
			s.RoughnessTexture, err = d.TextureInfo()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func (d *Decoder) specular() (*Specular, error) {
	s := &Specular{Factor: 1, ColorFactor: [3]float32{1, 1, 1}}
	err := d.object(ExtMaterialsSpecular, func(key string) error {
		var err error
		switch key {
		case "specularFactor":
			s.Factor, err = d.Float32()
		case "specularTexture":
			s.Texture, err = d.TextureInfo()
		case "specularColorFactor":
			err = d.Fixed(s.ColorFactor[:])
		case "specularColorTexture":
			s.ColorTexture, err = d.TextureInfo()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func (d *Decoder) transmission() (*Transmission, error) {
	t := &Transmission{}
	err := d.object(ExtMaterialsTransmission, func(key string) error {
		var err error
		switch key {
		case "transmissionFactor":
			t.Factor, err = d.Float32()
		case "transmissionTexture":
			t.Texture, err = d.TextureInfo()
		default:
			err = d.Skip()
		}
		return err
	})
	return t, err
}

func (d *Decoder) meshoptBuffer() (*MeshoptBuffer, error) {
	b := &MeshoptBuffer{}
	err := d.object(ExtMeshoptCompression, func(key string) error {
		if key != "fallback" {
			return d.Skip()
		}
		var err error
		b.Fallback, err = d.Bool()
		return err
	})
	return b, err
}

func (d *Decoder) meshoptCompression() (*MeshoptCompression, error) {
	m := &MeshoptCompression{}
	err := d.object(ExtMeshoptCompression, func(key string) error {
		var err error
		switch key {
		case "buffer":
			m.Buffer, err = d.Uint()
		case "byteOffset":
			m.ByteOffset, err = d.Uint()
		case "byteLength":
			m.ByteLength, err = d.Uint()
		case "byteStride":
			m.ByteStride, err = d.Uint()
		case "mode":
			m.Mode, err = decodeName[CompressionMode](d, "compression mode", compressionModeNames)
		case "count":
			m.Count, err = d.Uint()
		case "filter":
			m.Filter, err = decodeName[CompressionFilter](d, "compression filter", compressionFilterNames)
		default:
			err = d.Skip()
		}
		return err
	}, "buffer", "byteLength", "byteStride", "mode", "count")
	return m, err
}

func (d *Decoder) meshGPUInstancing() (*MeshGPUInstancing, error) {
	m := &MeshGPUInstancing{}
	err := d.object(ExtMeshGPUInstancing, func(key string) error {
		if key != "attributes" {
			return d.Skip()
		}
		return d.object("attributes", func(name string) error {
			idx, err := d.Index()
			if err != nil {
				return err
			}
			switch name {
			case "TRANSLATION":
				m.Translation = idx
			case "ROTATION":
				m.Rotation = idx
			case "SCALE":
				m.Scale = idx
			default:
				if m.Other == nil {
					m.Other = make(map[string]int)
				}
				m.Other[name] = *idx
			}
			return nil
		})
	}, "attributes")
	return m, err
}

func (d *Decoder) lod() (*LOD, error) {
	l := &LOD{}
	err := d.object(ExtLOD, func(key string) error {
		if key != "ids" {
			return d.Skip()
		}
		var err error
		l.IDs, err = d.Uints()
		return err
	}, "ids")
	return l, err
}
