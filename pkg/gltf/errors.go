package gltf

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gltfkit/pkg/encoding"
)

// glTF parse errors.
var (
	ErrTruncatedGLB    = errors.New("truncated GLB data")
	ErrSyntax          = errors.New("malformed JSON")
	ErrUnexpectedToken = errors.New("unexpected JSON token")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidValue    = errors.New("value outside its valid domain")
	ErrInvalidUTF8     = encoding.ErrInvalidUTF8
)

// ParseError is returned for every failure while loading a document.
// Line and Col are 1-based and point into the JSON text.
type ParseError struct {
	Msg    string
	Offset int64
	Line   int
	Col    int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gltf: %s (line %d, column %d)", e.Msg, e.Line, e.Col)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newParseError builds a ParseError positioned at off within src.
func newParseError(src []byte, off int64, cause error, msg string) *ParseError {
	line, col := lineCol(src, off)
	return &ParseError{Msg: msg, Offset: off, Line: line, Col: col, Err: cause}
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(src []byte, off int64) (line, col int) {
	if off > int64(len(src)) {
		off = int64(len(src))
	}
	if off < 0 {
		off = 0
	}
	line = 1
	lineStart := int64(0)
	for i := int64(0); i < off; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, int(off-lineStart) + 1
}
