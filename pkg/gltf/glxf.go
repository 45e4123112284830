package gltf

// AssetTransform controls how the transform of a referenced asset is applied.
type AssetTransform uint8

const (
	AssetTransformNone AssetTransform = iota
	AssetTransformLocal
	AssetTransformGlobal
)

var assetTransformNames = []string{"none", "local", "global"}

func (a AssetTransform) String() string { return name(assetTransformNames, a) }

// GLXF is a scene composed of external glTF assets.
type GLXF struct {
	Assets     []GLXFAsset
	Nodes      []Node
	Cameras    []Camera
	Scenes     []Scene
	Scene      int // Default is 0
	Extensions ExtensionSlot
}

// GLXFAsset references an external glTF file.
type GLXFAsset struct {
	URI       string
	Scene     *string  // Scene name to instantiate, nil for the default scene
	Nodes     []string // Node names to instantiate, nil for the whole scene
	Transform AssetTransform
	Name      string
}

// LoadGLXF parses a GLXF document using DefaultExtensions.
func LoadGLXF(data []byte) (*GLXF, error) {
	return LoadGLXFWith(data, DefaultExtensions)
}

// LoadGLXFWith parses a GLXF document, decoding extensions with set.
func LoadGLXFWith(data []byte, set ExtensionSet) (*GLXF, error) {
	d, err := jsonDecoder(data, set)
	if err != nil {
		return nil, err
	}
	g, err := d.glxf()
	if err != nil {
		return nil, err
	}
	if err := d.end(); err != nil {
		return nil, err
	}
	return g, nil
}

func (d *Decoder) glxf() (*GLXF, error) {
	g := &GLXF{Extensions: d.set.Root()}
	err := d.object("glxf", func(key string) error {
		var err error
		switch key {
		case "assets":
			err = d.Array(func(int) error {
				a, err := d.glxfAsset()
				g.Assets = append(g.Assets, a)
				return err
			})
		case "nodes":
			err = d.Array(func(int) error {
				n, err := d.node()
				g.Nodes = append(g.Nodes, n)
				return err
			})
		case "cameras":
			err = d.Array(func(int) error {
				c, err := d.camera()
				g.Cameras = append(g.Cameras, c)
				return err
			})
		case "scenes":
			err = d.Array(func(int) error {
				s, err := d.scene()
				g.Scenes = append(g.Scenes, s)
				return err
			})
		case "scene":
			g.Scene, err = d.Uint()
		case "extensions":
			err = d.Extension(g.Extensions)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (d *Decoder) glxfAsset() (GLXFAsset, error) {
	a := GLXFAsset{Transform: AssetTransformGlobal}
	err := d.object("asset", func(key string) error {
		var err error
		switch key {
		case "uri":
			a.URI, err = d.Text()
		case "scene":
			var s string
			s, err = d.Text()
			a.Scene = &s
		case "nodes":
			a.Nodes, err = d.Texts()
		case "transform":
			a.Transform, err = decodeName[AssetTransform](d, "asset transform", assetTransformNames)
		case "name":
			a.Name, err = d.Text()
		default:
			err = d.Skip()
		}
		return err
	}, "uri")
	return a, err
}
