package secret

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"unicode"
)

const (
	// DefaultPad is the byte written over a secret's buffer when it is released.
	DefaultPad byte = 'A'

	// MaskChar replaces every byte of a secret in any formatted output.
	MaskChar = "*"
)

// String is an owned secret value. Its bytes never appear in formatted or
// serialized output and are overwritten with DefaultPad when released.
//
// The zero value is an empty, already released secret.
type String struct {
	buf      []byte
	released bool
	cleanup  runtime.Cleanup
}

// New takes ownership of buf. The caller must not keep using buf after the
// call; it is wiped in place by Release.
func New(buf []byte) *String {
	s := &String{buf: buf}
	if len(buf) > 0 {
		// Backstop for values dropped without Release. Release stops it.
		s.cleanup = runtime.AddCleanup(s, func(b []byte) { Wipe(b, DefaultPad) }, buf)
	}
	return s
}

// FromString copies str into a new secret.
//
// The source string is immutable and cannot be wiped, so this is only meant
// for the one place where a secret arrives as a string (decoding a record).
func FromString(str string) *String {
	return New([]byte(str))
}

// Len returns the number of bytes held by the secret.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// Released reports whether the secret has already been wiped.
func (s *String) Released() bool {
	return s == nil || s.released
}

// Expose calls fn with the secret's bytes. fn must not retain the slice.
// A released secret exposes an empty slice.
func (s *String) Expose(fn func(b []byte)) {
	if s == nil || s.released {
		fn(nil)
		return
	}
	fn(s.buf)
}

// Release overwrites every byte of the secret with DefaultPad. It is safe to
// call more than once; only the first call does any work.
func (s *String) Release() {
	if s == nil || s.released {
		return
	}
	Wipe(s.buf, DefaultPad)
	s.cleanup.Stop()
	s.buf = nil
	s.released = true
}

// Mask returns one MaskChar per byte of the secret. Multi-byte characters
// therefore produce more than one mask character.
func (s *String) Mask() string {
	return strings.Repeat(MaskChar, s.Len())
}

// String implements fmt.Stringer.
func (s *String) String() string {
	return s.Mask()
}

// GoString implements fmt.GoStringer so %#v is masked as well.
func (s *String) GoString() string {
	return s.Mask()
}

// Format implements fmt.Formatter; every verb prints the mask.
func (s *String) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(s.Mask()))
}

// MarshalText keeps secrets out of text encoders.
func (s *String) MarshalText() ([]byte, error) {
	return []byte(s.Mask()), nil
}

// MarshalJSON keeps secrets out of JSON output.
func (s *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Mask())
}

// MarshalYAML keeps secrets out of YAML output.
func (s *String) MarshalYAML() (interface{}, error) {
	return s.Mask(), nil
}

// Wipe overwrites every byte of buf with pad.
//
// It panics if pad is not a single-byte (ASCII) character, before touching
// buf, so a buffer is never left partially wiped.
func Wipe(buf []byte, pad byte) {
	if pad > unicode.MaxASCII {
		panic(fmt.Sprintf("secret: pad byte %#x is not a single-byte character", pad))
	}
	for i := range buf {
		buf[i] = pad
	}
}
