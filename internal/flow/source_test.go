package flow

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"ctconn/internal/secret"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reveal(s *secret.String) string {
	var out string
	s.Expose(func(b []byte) { out = string(b) })
	return out
}

func TestReaderSource_ReadLine(t *testing.T) {
	var prompts bytes.Buffer
	src := NewReaderSource(strings.NewReader("a.b\r\nuser@example.com\nlast"), &prompts)

	line, err := src.ReadLine("host: ")
	require.NoError(t, err)
	assert.Equal(t, "a.b", line)

	line, err = src.ReadLine("account: ")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", line)

	line, err = src.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "last", line, "a final line without newline is still a candidate")

	_, err = src.ReadLine("again: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "host: account: again: ", prompts.String())
}

func TestReaderSource_EmptyLine(t *testing.T) {
	src := NewReaderSource(strings.NewReader("\n"), nil)
	line, err := src.ReadLine("x")
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestReaderSource_ReadSecret(t *testing.T) {
	long := strings.Repeat("s3cr3t ", 40)
	src := NewReaderSource(strings.NewReader(" with spaces \n"+long+"\n"), io.Discard)

	sec, err := src.ReadSecret("password: ")
	require.NoError(t, err)
	defer sec.Release()
	assert.Equal(t, " with spaces ", reveal(sec), "only the terminator is stripped")

	sec2, err := src.ReadSecret("password: ")
	require.NoError(t, err)
	defer sec2.Release()
	assert.Equal(t, long, reveal(sec2))
	assert.Equal(t, len(long), sec2.Len())
}

type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReaderSource_ReadError(t *testing.T) {
	boom := errors.New("boom")
	src := NewReaderSource(&failingReader{data: []byte("partial"), err: boom}, nil)

	sec, err := src.ReadSecret("password: ")
	assert.Nil(t, sec)
	assert.ErrorIs(t, err, boom)
}
