package cli

import (
	"errors"
	"io"
	"testing"

	"ctconn/internal/flow"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ flow.Source = (*TerminalSource)(nil)

type fakeLineReader struct {
	prompts   []string
	lines     []string
	passwords [][]byte
	err       error
	closed    bool
}

func (f *fakeLineReader) SetPrompt(prompt string) { f.prompts = append(f.prompts, prompt) }

func (f *fakeLineReader) Readline() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakeLineReader) ReadPassword(prompt string) ([]byte, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	pw := f.passwords[0]
	f.passwords = f.passwords[1:]
	return pw, nil
}

func (f *fakeLineReader) Close() error {
	f.closed = true
	return nil
}

func TestTerminalSource_ReadLine(t *testing.T) {
	fake := &fakeLineReader{lines: []string{"a.church.tools"}}
	src := &TerminalSource{rl: fake}

	line, err := src.ReadLine("host: ")
	require.NoError(t, err)
	assert.Equal(t, "a.church.tools", line)
	assert.Equal(t, []string{"host: "}, fake.prompts)

	require.NoError(t, src.Close())
	assert.True(t, fake.closed)
}

func TestTerminalSource_ReadSecretTakesOwnership(t *testing.T) {
	pw := []byte("hunter2")
	fake := &fakeLineReader{passwords: [][]byte{pw}}
	src := &TerminalSource{rl: fake}

	sec, err := src.ReadSecret("password: ")
	require.NoError(t, err)
	assert.Equal(t, "*******", sec.String())

	sec.Release()
	assert.Equal(t, "AAAAAAA", string(pw), "the buffer returned by readline must be wiped")
}

func TestTerminalSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"interrupt", readline.ErrInterrupt, ErrInterrupted},
		{"eof", io.EOF, io.EOF},
		{"other", errors.New("tty gone"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &TerminalSource{rl: &fakeLineReader{err: tt.err}}

			_, err := src.ReadLine("host: ")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				assert.Contains(t, err.Error(), "readline error: tty gone")
			}

			sec, err := src.ReadSecret("password: ")
			assert.Nil(t, sec)
			require.Error(t, err)
		})
	}
}
