//go:build ignore

// This program generates the triangle GLB used by unit tests.
// Run with: go run generate_triangle.go
package main

import (
	"bytes"
	"encoding/binary"
	"os"
)

const document = `{"asset":{"version":"2.0","generator":"generate_triangle.go"},` +
	`"scene":0,"scenes":[{"nodes":[0]}],"nodes":[{"mesh":0}],` +
	`"meshes":[{"primitives":[{"attributes":{"POSITION":1},"indices":0}]}],` +
	`"buffers":[{"byteLength":44}],` +
	`"bufferViews":[{"buffer":0,"byteLength":6,"target":34963},` +
	`{"buffer":0,"byteOffset":8,"byteLength":36,"target":34962}],` +
	`"accessors":[{"bufferView":0,"componentType":5123,"count":3,"type":"SCALAR"},` +
	`{"bufferView":1,"componentType":5126,"count":3,"type":"VEC3","min":[0,0,0],"max":[1,1,0]}]}`

func main() {
	var bin bytes.Buffer
	binary.Write(&bin, binary.LittleEndian, []uint16{0, 1, 2, 0}) // 3 indices + padding
	binary.Write(&bin, binary.LittleEndian, []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	})

	// Chunks are padded to 4 bytes: JSON with spaces, BIN with zeros.
	jsonText := []byte(document)
	for len(jsonText)%4 != 0 {
		jsonText = append(jsonText, ' ')
	}

	var buf bytes.Buffer
	buf.WriteString("glTF")
	binary.Write(&buf, binary.LittleEndian, uint32(2))
	binary.Write(&buf, binary.LittleEndian, uint32(12+8+len(jsonText)+8+bin.Len()))

	binary.Write(&buf, binary.LittleEndian, uint32(len(jsonText)))
	buf.WriteString("JSON")
	buf.Write(jsonText)

	binary.Write(&buf, binary.LittleEndian, uint32(bin.Len()))
	buf.WriteString("BIN\x00")
	buf.Write(bin.Bytes())

	if err := os.WriteFile("triangle.glb", buf.Bytes(), 0644); err != nil {
		panic(err)
	}
}
