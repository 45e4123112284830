package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/gltfkit/internal/resource"
	"github.com/Faultbox/gltfkit/pkg/accessor"
	"github.com/Faultbox/gltfkit/pkg/gltf"
)

var (
	errUsage  = errors.New("invalid arguments")
	errNotGLB = errors.New("not a GLB container")
)

func usage(format string) error {
	return fmt.Errorf("%w, usage: gltftool %s", errUsage, format)
}

func cmdInfo(a *app, args []string) error {
	if len(args) < 1 {
		return usage("info <file>...")
	}

	var errs error
	for _, path := range args {
		if err := printInfo(a, os.Stdout, path); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errs
}

func printInfo(a *app, w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, bin, err := gltf.LoadWith(data, a.set)
	if err != nil {
		return err
	}

	format := "glTF (JSON)"
	if gltf.IsGLB(data) {
		format = fmt.Sprintf("GLB (%d byte binary chunk)", len(bin))
	}

	primitives := 0
	for _, m := range doc.Meshes {
		primitives += len(m.Primitives)
	}

	fmt.Fprintf(w, "File:       %s\n", path)
	fmt.Fprintf(w, "Format:     %s\n", format)
	fmt.Fprintf(w, "Version:    %s\n", doc.Asset.Version)
	if doc.Asset.Generator != "" {
		fmt.Fprintf(w, "Generator:  %s\n", doc.Asset.Generator)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-12s %d\n", "buffers", len(doc.Buffers))
	fmt.Fprintf(w, "  %-12s %d\n", "views", len(doc.BufferViews))
	fmt.Fprintf(w, "  %-12s %d\n", "accessors", len(doc.Accessors))
	fmt.Fprintf(w, "  %-12s %d (%d primitives)\n", "meshes", len(doc.Meshes), primitives)
	fmt.Fprintf(w, "  %-12s %d\n", "materials", len(doc.Materials))
	fmt.Fprintf(w, "  %-12s %d\n", "textures", len(doc.Textures))
	fmt.Fprintf(w, "  %-12s %d\n", "images", len(doc.Images))
	fmt.Fprintf(w, "  %-12s %d\n", "nodes", len(doc.Nodes))
	fmt.Fprintf(w, "  %-12s %d\n", "scenes", len(doc.Scenes))
	fmt.Fprintf(w, "  %-12s %d\n", "skins", len(doc.Skins))
	fmt.Fprintf(w, "  %-12s %d\n", "animations", len(doc.Animations))
	fmt.Fprintf(w, "  %-12s %d\n", "cameras", len(doc.Cameras))
	if len(doc.ExtensionsUsed) > 0 {
		fmt.Fprintf(w, "Extensions: %s\n", strings.Join(doc.ExtensionsUsed, ", "))
	}
	if len(doc.ExtensionsRequired) > 0 {
		fmt.Fprintf(w, "Required:   %s\n", strings.Join(doc.ExtensionsRequired, ", "))
	}
	fmt.Fprintln(w)
	return nil
}

func cmdDump(a *app, args []string) error {
	if len(args) != 1 {
		return usage("dump <file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc, _, err := gltf.LoadWith(data, a.set)
	if err != nil {
		return err
	}

	return dumpDocument(os.Stdout, doc)
}

func dumpDocument(w io.Writer, doc *gltf.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func cmdSplit(a *app, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return usage("split <file.glb> [out.json] [out.bin]")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if !gltf.IsGLB(data) {
		return fmt.Errorf("%s: %w", args[0], errNotGLB)
	}
	jsonText, bin, err := gltf.SplitGLB(data)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	jsonPath, binPath := base+".json", base+".bin"
	if len(args) > 1 {
		jsonPath = args[1]
	}
	if len(args) > 2 {
		binPath = args[2]
	}

	if err := a.writeFile(jsonPath, jsonText); err != nil {
		return err
	}
	if err := a.writeFile(binPath, bin); err != nil {
		return err
	}
	a.log.Info("split GLB",
		zap.String("file", args[0]),
		zap.Int("json", len(jsonText)),
		zap.Int("bin", len(bin)))
	return nil
}

func cmdConvert(a *app, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	meshIdx := fs.Int("mesh", 0, "Mesh index")
	primIdx := fs.Int("primitive", 0, "Primitive index within the mesh")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return usage("convert [-mesh N] [-primitive N] <file> [out.bin]")
	}
	out := "output.bin"
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}

	doc, _, views, err := a.load(fs.Arg(0))
	if err != nil {
		return err
	}
	if *meshIdx < 0 || *meshIdx >= len(doc.Meshes) {
		return fmt.Errorf("mesh %d out of range (%d meshes)", *meshIdx, len(doc.Meshes))
	}
	mesh := &doc.Meshes[*meshIdx]
	if *primIdx < 0 || *primIdx >= len(mesh.Primitives) {
		return fmt.Errorf("primitive %d out of range (%d primitives)", *primIdx, len(mesh.Primitives))
	}

	r := accessor.NewPrimitiveReader(doc, &mesh.Primitives[*primIdx], views, a.readerOptions()...)
	positions, err := r.Positions()
	if err != nil {
		return fmt.Errorf("reading positions: %w", err)
	}
	normals, err := r.Normals()
	if err != nil {
		return fmt.Errorf("reading normals: %w", err)
	}
	if positions == nil || normals == nil {
		return fmt.Errorf("mesh %d primitive %d needs POSITION and NORMAL attributes", *meshIdx, *primIdx)
	}
	indices, err := r.Indices()
	if err != nil {
		return fmt.Errorf("reading indices: %w", err)
	}
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	var buf bytes.Buffer
	if err := writeMesh(&buf, indices, positions, normals); err != nil {
		return err
	}
	if err := a.writeFile(out, buf.Bytes()); err != nil {
		return err
	}
	a.log.Info("converted mesh",
		zap.String("file", fs.Arg(0)),
		zap.Int("indices", len(indices)),
		zap.Int("vertices", len(positions)))
	return nil
}

// writeMesh writes the index count, the vertex count, the indices, the
// positions and the normals, all little-endian.
func writeMesh(w io.Writer, indices []uint32, positions, normals [][3]float32) error {
	header := [2]uint32{uint32(len(indices)), uint32(len(positions))}
	for _, v := range []any{header, indices, positions, normals} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("writing mesh: %w", err)
		}
	}
	return nil
}

func cmdAttrs(a *app, args []string) error {
	if len(args) != 1 {
		return usage("attrs <file>")
	}
	doc, _, views, err := a.load(args[0])
	if err != nil {
		return err
	}
	return printAttrs(a, os.Stdout, doc, views)
}

func cmdImages(a *app, args []string) error {
	if len(args) != 1 {
		return usage("images <file>")
	}
	doc, loader, views, err := a.load(args[0])
	if err != nil {
		return err
	}
	return printImages(os.Stdout, doc, loader, views)
}

// printImages prints the format and size of every image. Images that cannot
// be read are reported and the rest are still listed.
func printImages(w io.Writer, doc *gltf.Document, loader *resource.Loader, views map[int][]byte) error {
	var errs error
	for i := range doc.Images {
		fmt.Fprintf(w, "image %d %q: ", i, doc.Images[i].Name)
		data, mime, err := loader.Image(doc, i, views)
		if err != nil {
			fmt.Fprintln(w, "error")
			errs = multierr.Append(errs, err)
			continue
		}
		info, err := resource.DecodeImageInfo(data)
		if err != nil {
			fmt.Fprintf(w, "%s, %d bytes, unknown size\n", mime, len(data))
			continue
		}
		fmt.Fprintf(w, "%s, %d bytes, %dx%d %s\n", mime, len(data), info.Width, info.Height, info.Format)
	}
	return errs
}

// decoders maps each attribute with a typed reader to a function returning
// the number of decoded elements.
var decoders = map[string]func(*accessor.PrimitiveReader) (int, error){
	gltf.AttrPosition:  func(r *accessor.PrimitiveReader) (int, error) { return count(r.Positions()) },
	gltf.AttrNormal:    func(r *accessor.PrimitiveReader) (int, error) { return count(r.Normals()) },
	gltf.AttrTangent:   func(r *accessor.PrimitiveReader) (int, error) { return count(r.Tangents()) },
	gltf.AttrTexCoord0: func(r *accessor.PrimitiveReader) (int, error) { return count(r.UVs()) },
	gltf.AttrTexCoord1: func(r *accessor.PrimitiveReader) (int, error) { return count(r.SecondUVs()) },
	gltf.AttrJoints0:   func(r *accessor.PrimitiveReader) (int, error) { return count(r.Joints()) },
	gltf.AttrWeights0:  func(r *accessor.PrimitiveReader) (int, error) { return count(r.Weights()) },
}

func count[T any](v []T, err error) (int, error) {
	return len(v), err
}

func printAttrs(a *app, w io.Writer, doc *gltf.Document, views map[int][]byte) error {
	for mi := range doc.Meshes {
		mesh := &doc.Meshes[mi]
		for pi := range mesh.Primitives {
			prim := &mesh.Primitives[pi]
			fmt.Fprintf(w, "mesh %d %q primitive %d (%s)\n", mi, mesh.Name, pi, prim.Mode)

			r := accessor.NewPrimitiveReader(doc, prim, views, a.readerOptions()...)
			if prim.Indices != nil {
				n, err := count(r.Indices())
				printAttr(w, doc, "indices", *prim.Indices, n, err)
			}
			for _, name := range prim.Attributes.Names() {
				idx, _ := prim.Attributes.Get(name)
				decode, ok := decoders[name]
				if !ok {
					printAttr(w, doc, name, idx, -1, nil)
					continue
				}
				n, err := decode(r)
				printAttr(w, doc, name, idx, n, err)
			}
		}
	}
	return nil
}

// printAttr prints one attribute line. decoded is -1 for attributes without
// a typed reader.
func printAttr(w io.Writer, doc *gltf.Document, name string, idx, decoded int, err error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		fmt.Fprintf(w, "  %-12s accessor %d out of range\n", name, idx)
		return
	}
	acc := &doc.Accessors[idx]
	fmt.Fprintf(w, "  %-12s accessor %-3d %-6s %-14s count %d", name, idx, acc.Type, acc.ComponentType, acc.Count)
	if acc.Normalized {
		fmt.Fprint(w, " normalized")
	}
	switch {
	case err != nil:
		fmt.Fprintf(w, "  error: %v", err)
	case decoded >= 0 && decoded != acc.Count:
		fmt.Fprintf(w, "  decoded %d", decoded)
	}
	fmt.Fprintln(w)
}

// load reads a document, its buffers and its buffer views.
func (a *app) load(path string) (*gltf.Document, *resource.Loader, map[int][]byte, error) {
	doc, loader, err := resource.Open(path, a.set, a.log.Named("resource"))
	if err != nil {
		return nil, nil, nil, err
	}
	buffers, err := loader.Buffers(doc)
	if err != nil {
		return nil, nil, nil, err
	}
	views, err := accessor.ViewBytes(doc, buffers, a.log)
	if err != nil {
		return nil, nil, nil, err
	}

	stats := loader.CacheStats()
	a.log.Debug("resources loaded",
		zap.String("file", path),
		zap.Int("buffers", len(buffers)),
		zap.Int("views", len(views)),
		zap.Int("cache_entries", stats.Entries),
		zap.Int("cache_bytes", stats.Bytes),
		zap.Int("cache_hits", stats.Hits))
	return doc, loader, views, nil
}

// writeFile writes data under the output directory. Existing files are only
// replaced when the config allows it.
func (a *app) writeFile(name string, data []byte) error {
	path := a.cfg.OutputPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !a.cfg.Output.Overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
