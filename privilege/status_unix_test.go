//go:build unix

package privilege

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRootOwnedSetuid(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("#!/bin/sh\n"), 0o755))
	assert.False(t, isRootOwnedSetuid(plain))

	setuid := filepath.Join(dir, "setuid")
	require.NoError(t, os.WriteFile(setuid, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.Chmod(setuid, 0o755|os.ModeSetuid))
	// Files created by the test belong to the test user, so this is only
	// root-owned when the tests themselves run as root.
	assert.Equal(t, os.Getuid() == 0, isRootOwnedSetuid(setuid))

	assert.False(t, isRootOwnedSetuid(filepath.Join(dir, "missing")))
}
