package flow

import (
	"errors"
	"fmt"
	"io"

	"ctconn/internal/secret"
)

// LineSource supplies one plain candidate per call.
type LineSource interface {
	ReadLine(prompt string) (string, error)
}

// SecretSource supplies one secret candidate per call. The caller owns the
// returned secret.
type SecretSource interface {
	ReadSecret(prompt string) (*secret.String, error)
}

// Source supplies candidates for every field.
type Source interface {
	LineSource
	SecretSource
}

// ReaderSource reads newline-terminated candidates from a stream and writes
// prompts to another. It reads one byte at a time and keeps no buffer of its
// own, so a secret's bytes only ever live in the returned secret.String.
type ReaderSource struct {
	r io.Reader
	w io.Writer
}

// NewReaderSource creates a source over r. Prompts go to w, which may be nil.
func NewReaderSource(r io.Reader, w io.Writer) *ReaderSource {
	return &ReaderSource{r: r, w: w}
}

// ReadLine implements LineSource.
func (s *ReaderSource) ReadLine(prompt string) (string, error) {
	s.prompt(prompt)
	buf, err := s.readLine()
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadSecret implements SecretSource. Only the line terminator is removed.
func (s *ReaderSource) ReadSecret(prompt string) (*secret.String, error) {
	s.prompt(prompt)
	buf, err := s.readLine()
	if err != nil {
		return nil, err
	}
	return secret.New(buf), nil
}

func (s *ReaderSource) prompt(prompt string) {
	if s.w != nil && prompt != "" {
		_, _ = fmt.Fprint(s.w, prompt)
	}
}

// readLine returns the next line without its "\n" or "\r\n" terminator.
// io.EOF is returned only when nothing was read. Buffers left behind by
// growth or errors are wiped.
func (s *ReaderSource) readLine() ([]byte, error) {
	var one [1]byte
	buf := make([]byte, 0, 64)
	for {
		n, err := s.r.Read(one[:])
		if n == 1 {
			if one[0] == '\n' {
				return trimCR(buf), nil
			}
			if len(buf) == cap(buf) {
				grown := make([]byte, len(buf), 2*cap(buf))
				copy(grown, buf)
				secret.Wipe(buf, secret.DefaultPad)
				buf = grown
			}
			buf = append(buf, one[0])
			one[0] = 0
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return trimCR(buf), nil
			}
			secret.Wipe(buf, secret.DefaultPad)
			return nil, err
		}
	}
}

func trimCR(buf []byte) []byte {
	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		return buf[:n-1]
	}
	return buf
}
