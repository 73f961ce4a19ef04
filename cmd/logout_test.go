package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"ctconn/internal/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, record.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("host: a.church.tools\n"), 0600))

	res := runCLI(t, dir, nil, nil, "", "logout")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "✓ Removed "+path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A second logout has nothing to remove and still succeeds.
	res = runCLI(t, dir, nil, nil, "", "logout", "-q")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}
