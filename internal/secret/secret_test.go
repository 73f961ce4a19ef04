package secret

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// charset excludes the mask character so any leak is detectable byte by byte.
const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890!$%&/()=?+#'{[]}\\~,.-;:_<>|"

func randomSecret(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[r.Intn(len(charset))]
	}
	return string(b)
}

func TestMaskNeverContainsSecretBytes(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		plain := randomSecret(r, 1+r.Intn(48))
		s := New([]byte(plain))

		outputs := map[string]string{
			"%s":  fmt.Sprintf("%s", s),
			"%v":  fmt.Sprintf("%v", s),
			"%+v": fmt.Sprintf("%+v", s),
			"%#v": fmt.Sprintf("%#v", s),
			"%q":  fmt.Sprintf("%q", s),
			"%x":  fmt.Sprintf("%x", s),
			"Str": s.String(),
		}
		for verb, out := range outputs {
			if len(out) != len(plain) {
				t.Fatalf("%s: mask length = %d, want %d", verb, len(out), len(plain))
			}
			for j := 0; j < len(plain); j++ {
				if strings.IndexByte(out, plain[j]) >= 0 {
					t.Fatalf("%s: output %q leaks byte %q of the secret", verb, out, plain[j])
				}
			}
		}
		s.Release()
	}
}

func TestMaskCountsBytesNotCharacters(t *testing.T) {
	s := FromString("pässwörd")
	defer s.Release()

	assert.Equal(t, len("pässwörd"), s.Len())
	assert.Equal(t, strings.Repeat("*", 10), s.String())
}

func TestMaskInsideStructs(t *testing.T) {
	type holder struct {
		User   string
		Secret *String
	}
	s := FromString("hunter2")
	defer s.Release()

	out := fmt.Sprintf("%+v", holder{User: "bob", Secret: s})
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "*******")
}

func TestSerializationIsMasked(t *testing.T) {
	s := FromString("hunter2")
	defer s.Release()

	j, err := json.Marshal(map[string]*String{"secret": s})
	require.NoError(t, err)
	assert.JSONEq(t, `{"secret":"*******"}`, string(j))

	y, err := yaml.Marshal(map[string]*String{"secret": s})
	require.NoError(t, err)
	assert.NotContains(t, string(y), "hunter2")

	txt, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "*******", string(txt))
}

func TestReleaseWipesBackingBuffer(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		plain := randomSecret(r, 1+r.Intn(64))
		buf := []byte(plain)
		alias := buf // test-only handle on the backing array

		s := New(buf)
		s.Release()

		for j, b := range alias {
			if b != DefaultPad {
				t.Fatalf("byte %d = %q after release, want %q", j, b, DefaultPad)
			}
		}
		assert.True(t, s.Released())
		assert.Equal(t, 0, s.Len())
	}
}

func TestReleaseOnEarlyReturn(t *testing.T) {
	buf := []byte("correct horse")
	alias := buf

	use := func() error {
		s := New(buf)
		defer s.Release()
		return fmt.Errorf("validation failed")
	}

	require.Error(t, use())
	assert.Equal(t, bytes.Repeat([]byte{DefaultPad}, len(alias)), alias)
}

func TestReleaseIsIdempotent(t *testing.T) {
	s := FromString("x")
	s.Release()
	assert.NotPanics(t, s.Release)

	var zero String
	assert.NotPanics(t, zero.Release)

	var nilSecret *String
	assert.NotPanics(t, nilSecret.Release)
	assert.Equal(t, "", nilSecret.String())
}

func TestExpose(t *testing.T) {
	s := FromString("hunter2")

	var seen string
	s.Expose(func(b []byte) { seen = string(b) })
	assert.Equal(t, "hunter2", seen)

	s.Release()
	s.Expose(func(b []byte) { seen = string(b) })
	assert.Equal(t, "", seen)
}

func TestWipe(t *testing.T) {
	t.Run("overwrites every byte", func(t *testing.T) {
		buf := []byte("BCDEFG")
		Wipe(buf, 'A')
		assert.Equal(t, "AAAAAA", string(buf))
	})

	t.Run("empty buffer", func(t *testing.T) {
		assert.NotPanics(t, func() { Wipe(nil, 'A') })
	})

	t.Run("invalid pad fails without partial wipe", func(t *testing.T) {
		for _, pad := range []byte{0x80, 0xC3, 0xFF} {
			buf := []byte("untouched")
			assert.Panics(t, func() { Wipe(buf, pad) })
			assert.Equal(t, "untouched", string(buf))
		}
	})

	t.Run("every ASCII pad is accepted", func(t *testing.T) {
		for pad := 0; pad <= 0x7F; pad++ {
			buf := []byte("xyz")
			Wipe(buf, byte(pad))
			assert.Equal(t, []byte{byte(pad), byte(pad), byte(pad)}, buf)
		}
	})
}
