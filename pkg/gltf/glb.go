package gltf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// GLB framing constants.
const (
	GLBMagic      = "glTF"
	GLBHeaderSize = 12 // magic, version, total length
	glbChunkHead  = 8  // chunk length, chunk type
	glbJSONStart  = GLBHeaderSize + glbChunkHead

	ChunkJSON uint32 = 0x4E4F534A // "JSON"
	ChunkBIN  uint32 = 0x004E4942 // "BIN\0"
)

// GLBHeader is the fixed header of a binary container together with the
// header of its first chunk.
type GLBHeader struct {
	Version       uint32
	Length        uint32 // Total length declared by the file
	JSONLength    uint32
	JSONChunkType uint32
}

// IsGLB reports whether data starts with the GLB magic.
func IsGLB(data []byte) bool {
	return bytes.HasPrefix(data, []byte(GLBMagic))
}

// ReadGLBHeader decodes the container header. The version, total length and
// chunk type are returned as stored and are not checked.
func ReadGLBHeader(data []byte) (GLBHeader, error) {
	if !IsGLB(data) {
		return GLBHeader{}, newParseError(data, 0, ErrInvalidValue, "missing GLB magic")
	}
	if len(data) < glbJSONStart {
		return GLBHeader{}, truncated(data, int64(len(data)),
			fmt.Sprintf("GLB header needs %d bytes, have %d", glbJSONStart, len(data)))
	}
	return GLBHeader{
		Version:       binary.LittleEndian.Uint32(data[4:8]),
		Length:        binary.LittleEndian.Uint32(data[8:12]),
		JSONLength:    binary.LittleEndian.Uint32(data[12:16]),
		JSONChunkType: binary.LittleEndian.Uint32(data[16:20]),
	}, nil
}

// SplitGLB separates input into JSON text and an optional binary chunk.
// Input that does not start with the GLB magic is returned unchanged as JSON.
// For a container, the JSON chunk length is read from byte 12 and the binary
// chunk, when present, starts right after the next chunk header. Both results
// alias data.
func SplitGLB(data []byte) (jsonText, bin []byte, err error) {
	if !IsGLB(data) {
		return data, nil, nil
	}

	hdr, err := ReadGLBHeader(data)
	if err != nil {
		return nil, nil, err
	}

	end := uint64(glbJSONStart) + uint64(hdr.JSONLength)
	if end > uint64(len(data)) {
		return nil, nil, truncated(data, 12,
			fmt.Sprintf("JSON chunk length %d exceeds the %d bytes after the header",
				hdr.JSONLength, len(data)-glbJSONStart))
	}
	jsonText = data[glbJSONStart:end]

	if end == uint64(len(data)) {
		return jsonText, nil, nil
	}
	if end+glbChunkHead > uint64(len(data)) {
		return nil, nil, truncated(data, int64(end),
			fmt.Sprintf("binary chunk header needs %d bytes, have %d", glbChunkHead, uint64(len(data))-end))
	}
	return jsonText, data[end+glbChunkHead:], nil
}

func truncated(data []byte, off int64, msg string) error {
	return newParseError(data, off, ErrTruncatedGLB, msg)
}
