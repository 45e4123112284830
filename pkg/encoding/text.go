// Package encoding provides text encoding utilities for glTF JSON documents.
package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is matched by every *InvalidTextError.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 text")

// InvalidTextError reports the first byte that is not part of a valid UTF-8 sequence.
type InvalidTextError struct {
	Offset int
}

func (e *InvalidTextError) Error() string {
	return fmt.Sprintf("%v at byte %d", ErrInvalidUTF8, e.Offset)
}

// Is reports whether target is ErrInvalidUTF8.
func (e *InvalidTextError) Is(target error) bool {
	return target == ErrInvalidUTF8
}

// JSONText prepares raw bytes for JSON decoding.
// It rejects invalid UTF-8, drops a leading byte order mark and trims
// trailing null padding written by some GLB exporters.
func JSONText(data []byte) ([]byte, error) {
	if off := InvalidOffset(data); off >= 0 {
		return nil, &InvalidTextError{Offset: off}
	}

	result, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, err
	}
	return TrimNullBytes(result), nil
}

// InvalidOffset returns the offset of the first invalid UTF-8 byte in data, or -1.
func InvalidOffset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}
