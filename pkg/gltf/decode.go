package gltf

// decodeDocument decodes the root object of a glTF document.
func (d *Decoder) decodeDocument() (*Document, error) {
	doc := &Document{Extensions: d.set.Root()}
	err := d.object("glTF", func(key string) error {
		switch key {
		case "asset":
			return d.asset(&doc.Asset)
		case "extensionsUsed":
			var err error
			doc.ExtensionsUsed, err = d.Texts()
			return err
		case "extensionsRequired":
			var err error
			doc.ExtensionsRequired, err = d.Texts()
			return err
		case "buffers":
			return d.Array(func(int) error {
				v, err := d.buffer()
				doc.Buffers = append(doc.Buffers, v)
				return err
			})
		case "bufferViews":
			return d.Array(func(int) error {
				v, err := d.bufferView()
				doc.BufferViews = append(doc.BufferViews, v)
				return err
			})
		case "accessors":
			return d.Array(func(int) error {
				v, err := d.accessor()
				doc.Accessors = append(doc.Accessors, v)
				return err
			})
		case "meshes":
			return d.Array(func(int) error {
				v, err := d.mesh()
				doc.Meshes = append(doc.Meshes, v)
				return err
			})
		case "materials":
			return d.Array(func(int) error {
				v, err := d.material()
				doc.Materials = append(doc.Materials, v)
				return err
			})
		case "textures":
			return d.Array(func(int) error {
				v, err := d.texture()
				doc.Textures = append(doc.Textures, v)
				return err
			})
		case "images":
			return d.Array(func(int) error {
				v, err := d.image()
				doc.Images = append(doc.Images, v)
				return err
			})
		case "samplers":
			return d.Array(func(int) error {
				v, err := d.sampler()
				doc.Samplers = append(doc.Samplers, v)
				return err
			})
		case "nodes":
			return d.Array(func(int) error {
				v, err := d.node()
				doc.Nodes = append(doc.Nodes, v)
				return err
			})
		case "scenes":
			return d.Array(func(int) error {
				v, err := d.scene()
				doc.Scenes = append(doc.Scenes, v)
				return err
			})
		case "skins":
			return d.Array(func(int) error {
				v, err := d.skin()
				doc.Skins = append(doc.Skins, v)
				return err
			})
		case "animations":
			return d.Array(func(int) error {
				v, err := d.animation()
				doc.Animations = append(doc.Animations, v)
				return err
			})
		case "cameras":
			return d.Array(func(int) error {
				v, err := d.camera()
				doc.Cameras = append(doc.Cameras, v)
				return err
			})
		case "scene":
			var err error
			doc.Scene, err = d.Index()
			return err
		case "extensions":
			return d.Extension(doc.Extensions)
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Decoder) asset(a *Asset) error {
	return d.object("asset", func(key string) error {
		var err error
		switch key {
		case "version":
			a.Version, err = d.Text()
		case "minVersion":
			a.MinVersion, err = d.Text()
		case "generator":
			a.Generator, err = d.Text()
		case "copyright":
			a.Copyright, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "version")
}

func (d *Decoder) buffer() (Buffer, error) {
	b := Buffer{Extensions: d.set.Buffer()}
	err := d.object("buffer", func(key string) error {
		var err error
		switch key {
		case "uri":
			b.URI, err = d.Text()
		case "byteLength":
			b.ByteLength, err = d.Uint()
		case "name":
			b.Name, err = d.Text()
		case "extensions":
			err = d.Extension(b.Extensions)
		default:
			err = d.Skip()
		}
		return err
	}, "byteLength")
	return b, err
}

func (d *Decoder) bufferView() (BufferView, error) {
	v := BufferView{Extensions: d.set.BufferView()}
	err := d.object("bufferView", func(key string) error {
		var err error
		switch key {
		case "buffer":
			v.Buffer, err = d.Uint()
		case "byteOffset":
			v.ByteOffset, err = d.Uint()
		case "byteLength":
			v.ByteLength, err = d.Uint()
		case "byteStride":
			v.ByteStride, err = d.Uint()
		case "target":
			v.Target, err = d.Uint()
		case "name":
			v.Name, err = d.Text()
		case "extensions":
			err = d.Extension(v.Extensions)
		default:
			err = d.Skip()
		}
		return err
	}, "buffer", "byteLength")
	return v, err
}

func (d *Decoder) accessor() (Accessor, error) {
	var a Accessor
	err := d.object("accessor", func(key string) error {
		var err error
		switch key {
		case "bufferView":
			a.BufferView, err = d.Index()
		case "byteOffset":
			a.ByteOffset, err = d.Uint()
		case "componentType":
			a.ComponentType, err = decodeCode(d, "component type", ParseComponentType)
		case "normalized":
			a.Normalized, err = d.Bool()
		case "count":
			a.Count, err = d.Uint()
		case "type":
			a.Type, err = decodeName[AccessorType](d, "accessor type", accessorTypeNames)
		case "min":
			a.Min, err = d.Float64s()
		case "max":
			a.Max, err = d.Float64s()
		case "sparse":
			a.Sparse, err = d.sparse()
		case "name":
			a.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "componentType", "count", "type")
	return a, err
}

func (d *Decoder) sparse() (*Sparse, error) {
	s := &Sparse{}
	err := d.object("sparse", func(key string) error {
		var err error
		switch key {
		case "count":
			s.Count, err = d.Uint()
		case "indices":
			err = d.object("sparse indices", func(key string) error {
				var err error
				switch key {
				case "bufferView":
					s.Indices.BufferView, err = d.Uint()
				case "byteOffset":
					s.Indices.ByteOffset, err = d.Uint()
				case "componentType":
					s.Indices.ComponentType, err = decodeCode(d, "component type", ParseComponentType)
				default:
					err = d.Skip()
				}
				return err
			}, "bufferView", "componentType")
		case "values":
			err = d.object("sparse values", func(key string) error {
				var err error
				switch key {
				case "bufferView":
					s.Values.BufferView, err = d.Uint()
				case "byteOffset":
					s.Values.ByteOffset, err = d.Uint()
				default:
					err = d.Skip()
				}
				return err
			}, "bufferView")
		default:
			err = d.Skip()
		}
		return err
	}, "count", "indices", "values")
	return s, err
}

func (d *Decoder) mesh() (Mesh, error) {
	var m Mesh
	err := d.object("mesh", func(key string) error {
		var err error
		switch key {
		case "primitives":
			err = d.Array(func(int) error {
				p, err := d.primitive()
				m.Primitives = append(m.Primitives, p)
				return err
			})
		case "weights":
			m.Weights, err = d.Float32s()
		case "name":
			m.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "primitives")
	return m, err
}

func (d *Decoder) primitive() (Primitive, error) {
	p := Primitive{Mode: ModeTriangles}
	err := d.object("primitive", func(key string) error {
		var err error
		switch key {
		case "attributes":
			p.Attributes, err = d.attributes()
		case "indices":
			p.Indices, err = d.Index()
		case "material":
			p.Material, err = d.Index()
		case "mode":
			p.Mode, err = decodeCode(d, "primitive mode", ParsePrimitiveMode)
		case "targets":
			err = d.Array(func(int) error {
				t, err := d.attributes()
				p.Targets = append(p.Targets, t)
				return err
			})
		default:
			err = d.Skip()
		}
		return err
	}, "attributes")
	return p, err
}

func (d *Decoder) attributes() (Attributes, error) {
	var a Attributes
	err := d.object("attributes", func(name string) error {
		idx, err := d.Index()
		if err != nil {
			return err
		}
		switch name {
		case AttrPosition:
			a.Position = idx
		case AttrNormal:
			a.Normal = idx
		case AttrTangent:
			a.Tangent = idx
		case AttrTexCoord0:
			a.TexCoord0 = idx
		case AttrTexCoord1:
			a.TexCoord1 = idx
		case AttrJoints0:
			a.Joints0 = idx
		case AttrWeights0:
			a.Weights0 = idx
		default:
			if a.Other == nil {
				a.Other = make(map[string]int)
			}
			a.Other[name] = *idx
		}
		return nil
	})
	return a, err
}

func (d *Decoder) material() (Material, error) {
	m := Material{
		PBRMetallicRoughness: PBRMetallicRoughness{
			BaseColorFactor: [4]float32{1, 1, 1, 1},
			MetallicFactor:  1,
			RoughnessFactor: 1,
		},
		AlphaCutoff: 0.5,
		Extensions:  d.set.Material(),
	}
	err := d.object("material", func(key string) error {
		var err error
		switch key {
		case "pbrMetallicRoughness":
			err = d.pbr(&m.PBRMetallicRoughness)
		case "normalTexture":
			m.NormalTexture, err = d.normalTexture()
		case "occlusionTexture":
			m.OcclusionTexture, err = d.occlusionTexture()
		case "emissiveTexture":
			m.EmissiveTexture, err = d.TextureInfo()
		case "emissiveFactor":
			err = d.Fixed(m.EmissiveFactor[:])
		case "alphaMode":
			m.AlphaMode, err = decodeName[AlphaMode](d, "alpha mode", alphaModeNames)
		case "alphaCutoff":
			m.AlphaCutoff, err = d.Float32()
		case "doubleSided":
			m.DoubleSided, err = d.Bool()
		case "name":
			m.Name, err = d.Text()
		case "extensions":
			err = d.Extension(m.Extensions)
		default:
			err = d.Skip()
		}
		return err
	})
	return m, err
}

func (d *Decoder) pbr(p *PBRMetallicRoughness) error {
	return d.object("pbrMetallicRoughness", func(key string) error {
		var err error
		switch key {
		case "baseColorFactor":
			err = d.Fixed(p.BaseColorFactor[:])
		case "baseColorTexture":
			p.BaseColorTexture, err = d.TextureInfo()
		case "metallicFactor":
			p.MetallicFactor, err = d.Float32()
		case "roughnessFactor":
			p.RoughnessFactor, err = d.Float32()
		case "metallicRoughnessTexture":
			p.MetallicRoughnessTexture, err = d.TextureInfo()
		default:
			err = d.Skip()
		}
		return err
	})
}

// TextureInfo decodes a texture reference, including its extensions.
func (d *Decoder) TextureInfo() (*TextureInfo, error) {
	t := &TextureInfo{Extensions: d.set.TextureInfo()}
	err := d.object("textureInfo", func(key string) error {
		return d.textureInfoField(t, key)
	}, "index")
	return t, err
}

func (d *Decoder) textureInfoField(t *TextureInfo, key string) error {
	var err error
	switch key {
	case "index":
		t.Index, err = d.Uint()
	case "texCoord":
		t.TexCoord, err = d.Uint()
	case "extensions":
		err = d.Extension(t.Extensions)
	default:
		err = d.Skip()
	}
	return err
}

func (d *Decoder) normalTexture() (*NormalTextureInfo, error) {
	t := &NormalTextureInfo{TextureInfo: TextureInfo{Extensions: d.set.TextureInfo()}, Scale: 1}
	err := d.object("normalTexture", func(key string) error {
		if key == "scale" {
			var err error
			t.Scale, err = d.Float32()
			return err
		}
		return d.textureInfoField(&t.TextureInfo, key)
	}, "index")
	return t, err
}

func (d *Decoder) occlusionTexture() (*OcclusionTextureInfo, error) {
	t := &OcclusionTextureInfo{TextureInfo: TextureInfo{Extensions: d.set.TextureInfo()}, Strength: 1}
	err := d.object("occlusionTexture", func(key string) error {
		if key == "strength" {
			var err error
			t.Strength, err = d.Float32()
			return err
		}
		return d.textureInfoField(&t.TextureInfo, key)
	}, "index")
	return t, err
}

func (d *Decoder) texture() (Texture, error) {
	t := Texture{Extensions: d.set.Texture()}
	err := d.object("texture", func(key string) error {
		var err error
		switch key {
		case "sampler":
			t.Sampler, err = d.Index()
		case "source":
			t.Source, err = d.Index()
		case "name":
			t.Name, err = d.Text()
		case "extensions":
			err = d.Extension(t.Extensions)
		default:
			err = d.Skip()
		}
		return err
	})
	return t, err
}

func (d *Decoder) image() (Image, error) {
	var img Image
	err := d.object("image", func(key string) error {
		var err error
		switch key {
		case "uri":
			img.URI, err = d.Text()
		case "mimeType":
			img.MimeType, err = d.Text()
		case "bufferView":
			img.BufferView, err = d.Index()
		case "name":
			img.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	})
	return img, err
}

func (d *Decoder) sampler() (Sampler, error) {
	s := Sampler{WrapS: WrapRepeat, WrapT: WrapRepeat}
	err := d.object("sampler", func(key string) error {
		var err error
		switch key {
		case "magFilter":
			s.MagFilter, err = decodeCode(d, "mag filter", ParseFilterMode)
		case "minFilter":
			s.MinFilter, err = decodeCode(d, "min filter", ParseMinFilter)
		case "wrapS":
			s.WrapS, err = decodeCode(d, "wrap mode", ParseWrapMode)
		case "wrapT":
			s.WrapT, err = decodeCode(d, "wrap mode", ParseWrapMode)
		case "name":
			s.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func (d *Decoder) node() (Node, error) {
	n := Node{Extensions: d.set.Node(), Extras: d.set.NodeExtras()}
	err := d.object("node", func(key string) error {
		var err error
		switch key {
		case "camera":
			n.Camera, err = d.Index()
		case "mesh":
			n.Mesh, err = d.Index()
		case "skin":
			n.Skin, err = d.Index()
		case "children":
			n.Children, err = d.Uints()
		case "matrix":
			n.Matrix = new([16]float32)
			err = d.Fixed(n.Matrix[:])
		case "translation":
			n.Translation = new([3]float32)
			err = d.Fixed(n.Translation[:])
		case "rotation":
			n.Rotation = new([4]float32)
			err = d.Fixed(n.Rotation[:])
		case "scale":
			n.Scale = new([3]float32)
			err = d.Fixed(n.Scale[:])
		case "weights":
			n.Weights, err = d.Float32s()
		case "name":
			n.Name, err = d.Text()
		case "extensions":
			err = d.Extension(n.Extensions)
		case "extras":
			err = n.Extras.DecodeExtras(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return n, err
}

func (d *Decoder) scene() (Scene, error) {
	var s Scene
	err := d.object("scene", func(key string) error {
		var err error
		switch key {
		case "nodes":
			s.Nodes, err = d.Uints()
		case "name":
			s.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	})
	return s, err
}

func (d *Decoder) skin() (Skin, error) {
	var s Skin
	err := d.object("skin", func(key string) error {
		var err error
		switch key {
		case "inverseBindMatrices":
			s.InverseBindMatrices, err = d.Index()
		case "skeleton":
			s.Skeleton, err = d.Index()
		case "joints":
			s.Joints, err = d.Uints()
		case "name":
			s.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "joints")
	return s, err
}

func (d *Decoder) animation() (Animation, error) {
	var a Animation
	err := d.object("animation", func(key string) error {
		var err error
		switch key {
		case "channels":
			err = d.Array(func(int) error {
				c, err := d.channel()
				a.Channels = append(a.Channels, c)
				return err
			})
		case "samplers":
			err = d.Array(func(int) error {
				s, err := d.animationSampler()
				a.Samplers = append(a.Samplers, s)
				return err
			})
		case "name":
			a.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "channels", "samplers")
	return a, err
}

func (d *Decoder) channel() (Channel, error) {
	var c Channel
	err := d.object("channel", func(key string) error {
		var err error
		switch key {
		case "sampler":
			c.Sampler, err = d.Uint()
		case "target":
			err = d.object("target", func(key string) error {
				var err error
				switch key {
				case "node":
					c.Target.Node, err = d.Index()
				case "path":
					c.Target.Path, err = decodeName[TargetPath](d, "target path", targetPathNames)
				default:
					err = d.Skip()
				}
				return err
			}, "path")
		default:
			err = d.Skip()
		}
		return err
	}, "sampler", "target")
	return c, err
}

func (d *Decoder) animationSampler() (AnimationSampler, error) {
	var s AnimationSampler
	err := d.object("animation sampler", func(key string) error {
		var err error
		switch key {
		case "input":
			s.Input, err = d.Uint()
		case "output":
			s.Output, err = d.Uint()
		case "interpolation":
			s.Interpolation, err = decodeName[Interpolation](d, "interpolation", interpolationNames)
		default:
			err = d.Skip()
		}
		return err
	}, "input", "output")
	return s, err
}

func (d *Decoder) camera() (Camera, error) {
	var c Camera
	err := d.object("camera", func(key string) error {
		var err error
		switch key {
		case "type":
			c.Type, err = decodeName[CameraType](d, "camera type", cameraTypeNames)
		case "perspective":
			c.Perspective, err = d.perspective()
		case "orthographic":
			c.Orthographic, err = d.orthographic()
		case "name":
			c.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "type")
	return c, err
}

func (d *Decoder) perspective() (*Perspective, error) {
	p := &Perspective{}
	err := d.object("perspective", func(key string) error {
		var err error
		switch key {
		case "yfov":
			p.YFov, err = d.Float32()
		case "znear":
			p.ZNear, err = d.Float32()
		case "zfar":
			var v float32
			v, err = d.Float32()
			p.ZFar = &v
		case "aspectRatio":
			var v float32
			v, err = d.Float32()
			p.AspectRatio = &v
		default:
			err = d.Skip()
		}
		return err
	}, "yfov", "znear")
	return p, err
}

func (d *Decoder) orthographic() (*Orthographic, error) {
	o := &Orthographic{}
	err := d.object("orthographic", func(key string) error {
		var err error
		switch key {
		case "xmag":
			o.XMag, err = d.Float32()
		case "ymag":
			o.YMag, err = d.Float32()
		case "zfar":
			o.ZFar, err = d.Float32()
		case "znear":
			o.ZNear, err = d.Float32()
		default:
			err = d.Skip()
		}
		return err
	}, "xmag", "ymag", "zfar", "znear")
	return o, err
}
