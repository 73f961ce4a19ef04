package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"ctconn/internal/flow"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	text.DisableColors()
	os.Exit(m.Run())
}

var _ flow.Reporter = (*ProgressReporter)(nil)

func TestProgressReporter_Accepted(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, false)

	p.Checking(flow.FieldHost, "a.church.tools")
	p.Checked(flow.FieldHost, true)
	p.Checking(flow.FieldSecret, "*******")
	p.Checked(flow.FieldSecret, true)

	assert.Equal(t, "✓ Host is reachable\n✓ Signed in\n", buf.String())
	assert.Nil(t, p.spinner)
}

func TestProgressReporter_Rejected(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, false)

	p.Checking(flow.FieldAccount, "nobody@invalid")
	p.Checked(flow.FieldAccount, false)
	p.Rejected(flow.FieldAccount, &flow.ValidationFailedError{Field: flow.FieldAccount}, 2)
	p.Rejected(flow.FieldAccount, &flow.ValidationFailedError{Field: flow.FieldAccount}, 1)
	p.Rejected(flow.FieldAccount, &flow.ValidationFailedError{Field: flow.FieldAccount}, 0)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "✗ the account address cannot receive mail (2 attempts left)", lines[0])
	assert.Equal(t, "✗ the account address cannot receive mail (1 attempt left)", lines[1])
	assert.Equal(t, "✗ the account address cannot receive mail", lines[2])
}

func TestProgressReporter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressReporter(&buf, true)

	p.Checking(flow.FieldHost, "a.church.tools")
	p.Checked(flow.FieldHost, true)
	assert.Empty(t, buf.String())

	p.Rejected(flow.FieldSecret, errors.New("boom"), -1)
	assert.Equal(t, "✗ boom\n", buf.String(), "rejections are shown even in quiet mode")
}

func TestCheckingMessage(t *testing.T) {
	assert.Equal(t, "Checking that https://a.b/ is reachable...", checkingMessage(flow.FieldHost, "a.b"))
	assert.Equal(t, "Checking that user@example.com can receive mail...", checkingMessage(flow.FieldAccount, "user@example.com"))
	assert.Equal(t, "Signing in...", checkingMessage(flow.FieldSecret, "***"))
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "✓ done", FormatSuccess("done"))
	assert.Equal(t, "⚠ careful", FormatWarning("careful"))
	assert.Equal(t, "Error: boom", FormatError(errors.New("boom")))
}
