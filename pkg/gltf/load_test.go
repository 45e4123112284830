package gltf

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleDocument = `{
  "asset": {"version": "2.0", "generator": "test", "copyright": "none"},
  "extensionsUsed": ["KHR_materials_unlit"],
  "scene": 0,
  "scenes": [{"nodes": [0], "name": "main"}],
  "nodes": [
    {"mesh": 0, "children": [1], "translation": [1, 2, 3], "name": "root"},
    {"camera": 0, "matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, 5,6,7,1]}
  ],
  "meshes": [{
    "name": "triangle",
    "primitives": [{
      "attributes": {"POSITION": 1, "NORMAL": 2, "TEXCOORD_0": 3, "COLOR_0": 4, "_CUSTOM": 5},
      "indices": 0,
      "material": 0,
      "targets": [{"POSITION": 6}]
    }],
    "weights": [0.5]
  }],
  "materials": [{
    "name": "red",
    "pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1], "baseColorTexture": {"index": 0}},
    "normalTexture": {"index": 0, "texCoord": 1},
    "occlusionTexture": {"index": 0, "strength": 0.25},
    "alphaMode": "MASK",
    "doubleSided": true,
    "extensions": {"KHR_materials_unlit": {}}
  }],
  "textures": [{"sampler": 0, "source": 0}],
  "images": [{"uri": "image.png"}, {"bufferView": 1, "mimeType": "image/png"}],
  "samplers": [{"magFilter": 9729, "minFilter": 9987}],
  "buffers": [{"byteLength": 72, "uri": "data.bin"}],
  "bufferViews": [
    {"buffer": 0, "byteLength": 6},
    {"buffer": 0, "byteOffset": 8, "byteLength": 36, "byteStride": 12, "target": 34962}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5123, "count": 3, "type": "SCALAR"},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3",
     "min": [0, 0, 0], "max": [1, 1, 0]},
    {"componentType": 5126, "count": 3, "type": "VEC3",
     "sparse": {"count": 1,
                "indices": {"bufferView": 0, "componentType": 5123},
                "values": {"bufferView": 1, "byteOffset": 4}}}
  ],
  "skins": [{"joints": [0, 1], "inverseBindMatrices": 2}],
  "animations": [{
    "channels": [{"sampler": 0, "target": {"node": 0, "path": "rotation"}}],
    "samplers": [{"input": 0, "output": 1, "interpolation": "STEP"}]
  }],
  "cameras": [
    {"type": "perspective", "perspective": {"yfov": 0.8, "znear": 0.1}},
    {"type": "orthographic", "orthographic": {"xmag": 1, "ymag": 1, "zfar": 10, "znear": 0.1}}
  ],
  "unknownTopLevel": {"ignored": [1, 2, {"deep": true}]}
}`

func TestLoadJSON_Document(t *testing.T) {
	doc, err := LoadJSONText(sampleDocument)
	if err != nil {
		t.Fatalf("LoadJSONText failed: %v", err)
	}

	if doc.Asset.Version != "2.0" || doc.Asset.Generator != "test" {
		t.Errorf("unexpected asset %+v", doc.Asset)
	}
	if doc.Scene == nil || *doc.Scene != 0 {
		t.Errorf("expected default scene 0, got %v", doc.Scene)
	}
	if len(doc.ExtensionsUsed) != 1 || doc.ExtensionsUsed[0] != ExtMaterialsUnlit {
		t.Errorf("unexpected extensionsUsed %v", doc.ExtensionsUsed)
	}

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"scenes", len(doc.Scenes), 1},
		{"nodes", len(doc.Nodes), 2},
		{"meshes", len(doc.Meshes), 1},
		{"materials", len(doc.Materials), 1},
		{"textures", len(doc.Textures), 1},
		{"images", len(doc.Images), 2},
		{"samplers", len(doc.Samplers), 1},
		{"buffers", len(doc.Buffers), 1},
		{"bufferViews", len(doc.BufferViews), 2},
		{"accessors", len(doc.Accessors), 3},
		{"skins", len(doc.Skins), 1},
		{"animations", len(doc.Animations), 1},
		{"cameras", len(doc.Cameras), 2},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("expected %d %s, got %d", c.want, c.name, c.got)
		}
	}

	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != ModeTriangles {
		t.Errorf("expected default mode Triangles, got %s", prim.Mode)
	}
	if prim.Attributes.Position == nil || *prim.Attributes.Position != 1 {
		t.Errorf("unexpected POSITION %v", prim.Attributes.Position)
	}
	if prim.Attributes.Tangent != nil {
		t.Errorf("expected no TANGENT, got %d", *prim.Attributes.Tangent)
	}
	if idx, ok := prim.Attributes.Get("COLOR_0"); !ok || idx != 4 {
		t.Errorf("expected COLOR_0 = 4, got %d (ok=%t)", idx, ok)
	}
	if idx, ok := prim.Attributes.Get(AttrTexCoord0); !ok || idx != 3 {
		t.Errorf("expected TEXCOORD_0 = 3, got %d (ok=%t)", idx, ok)
	}
	if _, ok := prim.Attributes.Get(AttrJoints0); ok {
		t.Error("expected JOINTS_0 to be absent")
	}
	if got := strings.Join(prim.Attributes.Names(), ","); got != "POSITION,NORMAL,TEXCOORD_0,COLOR_0,_CUSTOM" {
		t.Errorf("unexpected attribute names %s", got)
	}
	if len(prim.Targets) != 1 || *prim.Targets[0].Position != 6 {
		t.Errorf("unexpected morph targets %+v", prim.Targets)
	}

	mat := doc.Materials[0]
	if mat.AlphaMode != AlphaMask || mat.AlphaCutoff != 0.5 || !mat.DoubleSided {
		t.Errorf("unexpected alpha settings %s %v %t", mat.AlphaMode, mat.AlphaCutoff, mat.DoubleSided)
	}
	pbr := mat.PBRMetallicRoughness
	if pbr.BaseColorFactor != [4]float32{1, 0, 0, 1} {
		t.Errorf("unexpected base color %v", pbr.BaseColorFactor)
	}
	if pbr.MetallicFactor != 1 || pbr.RoughnessFactor != 1 {
		t.Errorf("expected default metallic/roughness 1, got %v/%v", pbr.MetallicFactor, pbr.RoughnessFactor)
	}
	if mat.NormalTexture == nil || mat.NormalTexture.Scale != 1 || mat.NormalTexture.TexCoord != 1 {
		t.Errorf("unexpected normal texture %+v", mat.NormalTexture)
	}
	if mat.OcclusionTexture == nil || mat.OcclusionTexture.Strength != 0.25 {
		t.Errorf("unexpected occlusion texture %+v", mat.OcclusionTexture)
	}
	if mat.EmissiveTexture != nil {
		t.Error("expected no emissive texture")
	}

	s := doc.Samplers[0]
	if s.MagFilter != FilterLinear || s.MinFilter.Mipmap != FilterLinear {
		t.Errorf("unexpected filters %+v", s)
	}
	if s.WrapS != WrapRepeat || s.WrapT != WrapRepeat {
		t.Errorf("expected default wrap Repeat, got %s/%s", s.WrapS, s.WrapT)
	}

	view := doc.BufferViews[1]
	if view.ByteStride != 12 || view.Target != 34962 || view.ByteOffset != 8 {
		t.Errorf("unexpected buffer view %+v", view)
	}
	if doc.BufferViews[0].ByteStride != 0 {
		t.Errorf("expected absent stride, got %d", doc.BufferViews[0].ByteStride)
	}

	acc := doc.Accessors[1]
	if acc.ComponentType != ComponentFloat || acc.Type != Vec3 || acc.Count != 3 {
		t.Errorf("unexpected accessor %+v", acc)
	}
	if len(acc.Max) != 3 || acc.Max[1] != 1 {
		t.Errorf("unexpected max %v", acc.Max)
	}
	sparse := doc.Accessors[2]
	if sparse.BufferView != nil || sparse.Sparse == nil || sparse.Sparse.Values.ByteOffset != 4 {
		t.Errorf("unexpected sparse accessor %+v", sparse)
	}

	ch := doc.Animations[0].Channels[0]
	if ch.Target.Path != PathRotation || ch.Target.Node == nil || *ch.Target.Node != 0 {
		t.Errorf("unexpected channel %+v", ch)
	}
	if doc.Animations[0].Samplers[0].Interpolation != InterpolationStep {
		t.Errorf("expected STEP interpolation")
	}

	persp := doc.Cameras[0].Perspective
	if persp == nil || persp.ZFar != nil || math.Abs(float64(persp.YFov)-0.8) > 1e-6 {
		t.Errorf("unexpected perspective %+v", persp)
	}
	if doc.Cameras[1].Type != CameraOrthographic || doc.Cameras[1].Orthographic.ZFar != 10 {
		t.Errorf("unexpected orthographic camera %+v", doc.Cameras[1])
	}
}

func TestLoadJSON_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		field string
	}{
		{"asset version", `{"asset":{}}`, "version"},
		{"buffer byteLength", `{"asset":{"version":"2.0"},"buffers":[{"uri":"a.bin"}]}`, "byteLength"},
		{"bufferView buffer", `{"asset":{"version":"2.0"},"bufferViews":[{"byteLength":4}]}`, "buffer"},
		{"accessor count", `{"asset":{"version":"2.0"},"accessors":[{"componentType":5126,"type":"VEC3"}]}`, "count"},
		{"mesh primitives", `{"asset":{"version":"2.0"},"meshes":[{"name":"m"}]}`, "primitives"},
		{"primitive attributes", `{"asset":{"version":"2.0"},"meshes":[{"primitives":[{"indices":0}]}]}`, "attributes"},
		{"texture index", `{"asset":{"version":"2.0"},"materials":[{"emissiveTexture":{"texCoord":0}}]}`, "index"},
		{"skin joints", `{"asset":{"version":"2.0"},"skins":[{}]}`, "joints"},
		{"target path", `{"asset":{"version":"2.0"},"animations":[{"channels":[{"sampler":0,"target":{"node":0}}],"samplers":[]}]}`, "path"},
		{"camera type", `{"asset":{"version":"2.0"},"cameras":[{"perspective":{"yfov":1,"znear":0.1}}]}`, "type"},
		{"perspective znear", `{"asset":{"version":"2.0"},"cameras":[{"type":"perspective","perspective":{"yfov":1}}]}`, "znear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSONText(tt.json)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if want := `"` + tt.field + `"`; !strings.Contains(perr.Msg, want) {
				t.Errorf("expected message to name %s, got %q", want, perr.Msg)
			}
		})
	}
}

func TestLoadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		cause error
		line  int
		col   int
	}{
		{"syntax", []byte("{\n  \"asset\": {\"version\": \"2.0\"},\n  \"nodes\": [}\n"), ErrSyntax, 3, 13},
		{"wrong token", []byte(`{"asset":{"version":2}}`), ErrUnexpectedToken, 1, 21},
		{"negative index", []byte(`{"asset":{"version":"2.0"},"scene":-1}`), ErrInvalidValue, 1, 36},
		{"fractional count", []byte(`{"asset":{"version":"2.0"},"accessors":[{"componentType":5126,"count":1.5,"type":"VEC3"}]}`), ErrInvalidValue, 1, 71},
		{"trailing data", []byte(`{"asset":{"version":"2.0"}} {}`), ErrSyntax, 1, 29},
		{"truncated", []byte(`{"asset":{"version":"2.0"}`), ErrSyntax, 1, 27},
		{"invalid UTF-8", []byte("{\"asset\":{\"version\":\"2.0\",\"generator\":\"\xff\"}}"), ErrInvalidUTF8, 1, 40},
		{"not an object", []byte(`[]`), ErrUnexpectedToken, 1, 1},
		{"wrong fixed length", []byte(`{"asset":{"version":"2.0"},"nodes":[{"translation":[1,2]}]}`), ErrInvalidValue, 1, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSON(tt.data)
			if !errors.Is(err, tt.cause) {
				t.Fatalf("expected %v, got %v", tt.cause, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Line != tt.line || perr.Col != tt.col {
				t.Errorf("expected line %d column %d, got line %d column %d (%v)",
					tt.line, tt.col, perr.Line, perr.Col, err)
			}
		})
	}
}

func TestLoadJSON_ByteOrderMark(t *testing.T) {
	data := append([]byte("\xef\xbb\xbf"), `{"asset":{"version":"2.0"}}`...)
	doc, err := LoadJSON(data)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if doc.Asset.Version != "2.0" {
		t.Errorf("expected version 2.0, got %q", doc.Asset.Version)
	}
}

func TestLoad_GLB(t *testing.T) {
	bin := make([]byte, 12)
	data := createTestGLB(`{"asset":{"version":"2.0"},"buffers":[{"byteLength":12}]}`+"\x00\x00", bin)

	doc, gotBin, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(gotBin) != 12 {
		t.Errorf("expected 12 binary bytes, got %d", len(gotBin))
	}
	if len(doc.Buffers) != 1 || doc.Buffers[0].URI != "" || doc.Buffers[0].ByteLength != 12 {
		t.Errorf("unexpected buffers %+v", doc.Buffers)
	}

	if _, _, err := Load(data[:25]); !errors.Is(err, ErrTruncatedGLB) {
		t.Errorf("expected ErrTruncatedGLB, got %v", err)
	}
}

func TestLoad_GLBMatchesJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		set  ExtensionSet
	}{
		{"sample document", sampleDocument, DefaultExtensions},
		{"extensions", extensionDocument, DefaultExtensions},
		{"extensions ignored", extensionDocument, NoExtensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// JSON chunks are space padded to a 4-byte boundary
			jsonText := tt.doc + strings.Repeat(" ", (4-len(tt.doc)%4)%4)
			glb := createTestGLB(jsonText, make([]byte, 72))

			chunk, _, err := SplitGLB(glb)
			if err != nil {
				t.Fatalf("SplitGLB failed: %v", err)
			}
			fromGLB, bin, err := LoadWith(glb, tt.set)
			if err != nil {
				t.Fatalf("LoadWith failed: %v", err)
			}
			fromJSON, err := LoadJSONWith(chunk, tt.set)
			if err != nil {
				t.Fatalf("LoadJSONWith failed: %v", err)
			}

			if len(bin) != 72 {
				t.Errorf("expected 72 binary bytes, got %d", len(bin))
			}
			if len(fromGLB.Nodes) == 0 {
				t.Fatal("expected nodes in the loaded document")
			}
			if !reflect.DeepEqual(fromGLB, fromJSON) {
				t.Errorf("documents differ:\nGLB:  %+v\nJSON: %+v", fromGLB, fromJSON)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "triangle.glb"))
	if err != nil {
		t.Skipf("test file not found: %v", err)
	}

	doc, bin, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Accessors) != 2 {
		t.Errorf("expected 1 mesh and 2 accessors, got %d and %d", len(doc.Meshes), len(doc.Accessors))
	}
	if len(bin) != doc.Buffers[0].ByteLength {
		t.Errorf("expected %d binary bytes, got %d", doc.Buffers[0].ByteLength, len(bin))
	}
}
