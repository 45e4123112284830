package gltf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Decoder walks a JSON document token by token and builds typed values.
// Extension containers receive it to decode their own payloads; every error
// it returns is a *ParseError positioned in the original document.
type Decoder struct {
	src  []byte // whole document, used for positions
	buf  []byte // bytes fed to dec
	base int64  // offset of buf within src
	dec  *json.Decoder
	set  ExtensionSet
}

func newDecoder(src []byte, set ExtensionSet) *Decoder {
	return newSubDecoder(src, src, 0, set)
}

func newSubDecoder(src, buf []byte, base int64, set ExtensionSet) *Decoder {
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	return &Decoder{src: src, buf: buf, base: base, dec: dec, set: set}
}

// Extensions returns the extension set used for nested containers.
func (d *Decoder) Extensions() ExtensionSet {
	return d.set
}

// Offset returns the document offset of the next value.
func (d *Decoder) Offset() int64 {
	off := d.dec.InputOffset()
	for off < int64(len(d.buf)) && isSeparator(d.buf[off]) {
		off++
	}
	return d.base + off
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ':':
		return true
	}
	return false
}

// Errorf returns a ParseError positioned at the next value.
func (d *Decoder) Errorf(format string, args ...any) error {
	return d.errorAt(d.Offset(), ErrInvalidValue, fmt.Sprintf(format, args...))
}

func (d *Decoder) errorAt(off int64, cause error, msg string) error {
	return newParseError(d.src, off, cause, msg)
}

func (d *Decoder) token() (json.Token, int64, error) {
	off := d.Offset()
	tok, err := d.dec.Token()
	if err != nil {
		return nil, off, d.syntaxError(off, err)
	}
	return tok, off, nil
}

func (d *Decoder) syntaxError(off int64, err error) error {
	var syn *json.SyntaxError
	switch {
	case errors.As(err, &syn):
		return d.errorAt(d.base+syn.Offset, ErrSyntax, syn.Error())
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return d.errorAt(d.base+int64(len(d.buf)), ErrSyntax, "unexpected end of JSON input")
	default:
		return d.errorAt(off, ErrSyntax, err.Error())
	}
}

func (d *Decoder) unexpected(off int64, want string, tok json.Token) error {
	return d.errorAt(off, ErrUnexpectedToken, fmt.Sprintf("expected %s, found %s", want, describe(tok)))
}

func describe(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", v.String())
	case string:
		return fmt.Sprintf("string %q", v)
	case json.Number:
		return "number " + v.String()
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (d *Decoder) delim(want json.Delim, what string) (int64, error) {
	tok, off, err := d.token()
	if err != nil {
		return off, err
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return off, d.unexpected(off, what, tok)
	}
	return off, nil
}

// end checks that nothing but whitespace follows the top-level value.
func (d *Decoder) end() error {
	off := d.Offset()
	tok, err := d.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return d.syntaxError(off, err)
	}
	return d.errorAt(off, ErrSyntax, fmt.Sprintf("unexpected %s after top-level value", describe(tok)))
}

// Object decodes a JSON object, calling fn once per key. fn must consume the
// value, either by decoding it or by calling Skip.
func (d *Decoder) Object(fn func(key string) error) error {
	return d.object("object", fn)
}

// object decodes an object named what and checks that every required key was present.
func (d *Decoder) object(what string, fn func(key string) error, required ...string) error {
	start, err := d.delim('{', what+" object")
	if err != nil {
		return err
	}

	var seen uint64
	for d.dec.More() {
		tok, off, err := d.token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return d.unexpected(off, "object key", tok)
		}
		for i, name := range required {
			if name == key {
				seen |= 1 << i
			}
		}
		if err := fn(key); err != nil {
			return err
		}
	}

	if _, err := d.delim('}', "end of "+what+" object"); err != nil {
		return err
	}
	for i, name := range required {
		if seen&(1<<i) == 0 {
			return d.errorAt(start, ErrMissingField, fmt.Sprintf("%s: missing required field %q", what, name))
		}
	}
	return nil
}

// Array decodes a JSON array, calling fn once per element. fn must consume the element.
func (d *Decoder) Array(fn func(i int) error) error {
	if _, err := d.delim('[', "array"); err != nil {
		return err
	}
	for i := 0; d.dec.More(); i++ {
		if err := fn(i); err != nil {
			return err
		}
	}
	_, err := d.delim(']', "end of array")
	return err
}

// Raw returns the next value verbatim.
func (d *Decoder) Raw() (json.RawMessage, error) {
	off := d.Offset()
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		return nil, d.syntaxError(off, err)
	}
	return raw, nil
}

// Skip consumes the next value without decoding it.
func (d *Decoder) Skip() error {
	_, err := d.Raw()
	return err
}

func (d *Decoder) number(what string) (json.Number, int64, error) {
	tok, off, err := d.token()
	if err != nil {
		return "", off, err
	}
	n, ok := tok.(json.Number)
	if !ok {
		return "", off, d.unexpected(off, what, tok)
	}
	return n, off, nil
}

func (d *Decoder) uint(what string) (uint64, int64, error) {
	n, off, err := d.number(what)
	if err != nil {
		return 0, off, err
	}
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil || v > math.MaxInt {
		return 0, off, d.errorAt(off, ErrInvalidValue, fmt.Sprintf("expected %s, found %s", what, n))
	}
	return v, off, nil
}

// Uint decodes a non-negative integer such as an index, a count or a byte length.
func (d *Decoder) Uint() (int, error) {
	v, _, err := d.uint("unsigned integer")
	return int(v), err
}

// Index decodes an index into one of the document arrays.
func (d *Decoder) Index() (*int, error) {
	v, _, err := d.uint("index")
	if err != nil {
		return nil, err
	}
	i := int(v)
	return &i, nil
}

// Float64 decodes a number.
func (d *Decoder) Float64() (float64, error) {
	n, off, err := d.number("number")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, d.errorAt(off, ErrInvalidValue, fmt.Sprintf("invalid number %s", n))
	}
	return v, nil
}

// Float32 decodes a number as a float32.
func (d *Decoder) Float32() (float32, error) {
	v, err := d.Float64()
	return float32(v), err
}

// Bool decodes a boolean.
func (d *Decoder) Bool() (bool, error) {
	tok, off, err := d.token()
	if err != nil {
		return false, err
	}
	b, ok := tok.(bool)
	if !ok {
		return false, d.unexpected(off, "boolean", tok)
	}
	return b, nil
}

// Text decodes a string.
func (d *Decoder) Text() (string, error) {
	tok, off, err := d.token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", d.unexpected(off, "string", tok)
	}
	return s, nil
}

// Texts decodes an array of strings.
func (d *Decoder) Texts() ([]string, error) {
	out := []string{}
	err := d.Array(func(int) error {
		s, err := d.Text()
		out = append(out, s)
		return err
	})
	return out, err
}

// Uints decodes an array of non-negative integers.
func (d *Decoder) Uints() ([]int, error) {
	out := []int{}
	err := d.Array(func(int) error {
		v, err := d.Uint()
		out = append(out, v)
		return err
	})
	return out, err
}

// Float64s decodes an array of numbers of any length.
func (d *Decoder) Float64s() ([]float64, error) {
	out := []float64{}
	err := d.Array(func(int) error {
		v, err := d.Float64()
		out = append(out, v)
		return err
	})
	return out, err
}

// Float32s decodes an array of numbers of any length.
func (d *Decoder) Float32s() ([]float32, error) {
	out := []float32{}
	err := d.Array(func(int) error {
		v, err := d.Float32()
		out = append(out, v)
		return err
	})
	return out, err
}

// Fixed decodes an array of exactly len(dst) numbers into dst.
func (d *Decoder) Fixed(dst []float32) error {
	off := d.Offset()
	vals, err := d.Float32s()
	if err != nil {
		return err
	}
	if len(vals) != len(dst) {
		return d.errorAt(off, ErrInvalidValue, fmt.Sprintf("expected %d numbers, found %d", len(dst), len(vals)))
	}
	copy(dst, vals)
	return nil
}

// Extension decodes an "extensions" object into slot. Keys the slot does not
// recognize are skipped.
func (d *Decoder) Extension(slot ExtensionSlot) error {
	return d.object("extensions", func(key string) error {
		ok, err := slot.DecodeExtension(d, key)
		if err != nil {
			return err
		}
		if !ok {
			return d.Skip()
		}
		return nil
	})
}
