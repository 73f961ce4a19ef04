package cli

import (
	"errors"
	"fmt"
	"io"

	"ctconn/internal/secret"

	"github.com/chzyer/readline"
)

// ErrInterrupted is returned when the operator presses Ctrl+C at a prompt.
var ErrInterrupted = errors.New("input interrupted")

// lineReader is the part of *readline.Instance the terminal source uses.
type lineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
	Close() error
}

// TerminalSource reads candidates from an interactive terminal. Secrets are
// read without echo and are never added to the line history.
type TerminalSource struct {
	rl lineReader
}

// NewTerminalSource opens the terminal on stdin/stdout.
func NewTerminalSource() (*TerminalSource, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistoryLimit:           -1,
		DisableAutoSaveHistory: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &TerminalSource{rl: rl}, nil
}

// ReadLine implements flow.LineSource.
func (s *TerminalSource) ReadLine(prompt string) (string, error) {
	s.rl.SetPrompt(prompt)
	line, err := s.rl.Readline()
	return line, translateReadlineError(err)
}

// ReadSecret implements flow.SecretSource.
func (s *TerminalSource) ReadSecret(prompt string) (*secret.String, error) {
	buf, err := s.rl.ReadPassword(prompt)
	if err != nil {
		secret.Wipe(buf, secret.DefaultPad)
		return nil, translateReadlineError(err)
	}
	return secret.New(buf), nil
}

// Close restores the terminal.
func (s *TerminalSource) Close() error {
	return s.rl.Close()
}

func translateReadlineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, readline.ErrInterrupt):
		return ErrInterrupted
	case errors.Is(err, io.EOF):
		return io.EOF
	default:
		return fmt.Errorf("readline error: %w", err)
	}
}

// IsTerminal reports whether stdin and stdout are attached to a terminal.
func IsTerminal() bool {
	return readline.DefaultIsTerminal()
}
