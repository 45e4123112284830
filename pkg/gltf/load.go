package gltf

import (
	"errors"

	"github.com/Faultbox/gltfkit/pkg/encoding"
)

// Load parses a .gltf or .glb file using DefaultExtensions. It returns the
// document and the GLB binary chunk, which is nil for JSON input.
func Load(data []byte) (*Document, []byte, error) {
	return LoadWith(data, DefaultExtensions)
}

// LoadWith is like Load but decodes extensions with set.
func LoadWith(data []byte, set ExtensionSet) (*Document, []byte, error) {
	text, bin, err := SplitGLB(data)
	if err != nil {
		return nil, nil, err
	}
	doc, err := LoadJSONWith(text, set)
	if err != nil {
		return nil, nil, err
	}
	return doc, bin, nil
}

// LoadJSON parses a JSON document using DefaultExtensions.
func LoadJSON(data []byte) (*Document, error) {
	return LoadJSONWith(data, DefaultExtensions)
}

// LoadJSONText parses a JSON document held in a string.
func LoadJSONText(text string) (*Document, error) {
	return LoadJSONWith([]byte(text), DefaultExtensions)
}

// LoadJSONWith parses a JSON document, decoding extensions with set.
// A nil set behaves like NoExtensions.
func LoadJSONWith(data []byte, set ExtensionSet) (*Document, error) {
	d, err := jsonDecoder(data, set)
	if err != nil {
		return nil, err
	}
	doc, err := d.decodeDocument()
	if err != nil {
		return nil, err
	}
	if err := d.end(); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonDecoder validates the text encoding and returns a decoder positioned at
// the first token.
func jsonDecoder(data []byte, set ExtensionSet) (*Decoder, error) {
	if set == nil {
		set = NoExtensions
	}
	text, err := encoding.JSONText(data)
	if err != nil {
		var bad *encoding.InvalidTextError
		if errors.As(err, &bad) {
			return nil, newParseError(data, int64(bad.Offset), ErrInvalidUTF8, bad.Error())
		}
		return nil, newParseError(data, 0, ErrSyntax, err.Error())
	}
	return newDecoder(text, set), nil
}
