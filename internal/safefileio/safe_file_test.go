package safefileio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeTempDir creates a temporary directory and resolves any symlinks in its path
// to ensure consistent behavior across different environments.
func safeTempDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	realPath, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err, "Failed to resolve symlinks in temp dir")
	return realPath
}

func writeFile(t *testing.T, path string, content []byte, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, content, perm))
	require.NoError(t, os.Chmod(path, perm))
}

func TestReadFile(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		maxSize int64
		want    []byte
		errType error
	}{
		{
			name: "regular file",
			setup: func(t *testing.T) string {
				path := filepath.Join(safeTempDir(t), "profile.toml")
				writeFile(t, path, []byte(`wrapper = "sudo"`), 0o600)
				return path
			},
			want: []byte(`wrapper = "sudo"`),
		},
		{
			name: "group readable file",
			setup: func(t *testing.T) string {
				path := filepath.Join(safeTempDir(t), "profile.toml")
				writeFile(t, path, []byte("x"), 0o644)
				return path
			},
			want: []byte("x"),
		},
		{
			name: "symlink to file",
			setup: func(t *testing.T) string {
				dir := safeTempDir(t)
				target := filepath.Join(dir, "target.toml")
				writeFile(t, target, []byte("x"), 0o600)
				link := filepath.Join(dir, "link.toml")
				require.NoError(t, os.Symlink(target, link))
				return link
			},
			errType: ErrIsSymlink,
		},
		{
			name: "symlinked directory component",
			setup: func(t *testing.T) string {
				dir := safeTempDir(t)
				realDir := filepath.Join(dir, "real")
				require.NoError(t, os.Mkdir(realDir, 0o755))
				writeFile(t, filepath.Join(realDir, "profile.toml"), []byte("x"), 0o600)
				linkDir := filepath.Join(dir, "linked")
				require.NoError(t, os.Symlink(realDir, linkDir))
				return filepath.Join(linkDir, "profile.toml")
			},
			errType: ErrIsSymlink,
		},
		{
			name: "world writable file",
			setup: func(t *testing.T) string {
				path := filepath.Join(safeTempDir(t), "profile.toml")
				writeFile(t, path, []byte("x"), 0o666)
				return path
			},
			errType: ErrInvalidFilePermissions,
		},
		{
			name: "group writable file",
			setup: func(t *testing.T) string {
				path := filepath.Join(safeTempDir(t), "profile.toml")
				writeFile(t, path, []byte("x"), 0o620)
				return path
			},
			errType: ErrInvalidFilePermissions,
		},
		{
			name: "directory",
			setup: func(t *testing.T) string {
				return safeTempDir(t)
			},
			errType: ErrInvalidFilePath,
		},
		{
			name: "file over limit",
			setup: func(t *testing.T) string {
				path := filepath.Join(safeTempDir(t), "big.toml")
				writeFile(t, path, make([]byte, 17), 0o600)
				return path
			},
			maxSize: 16,
			errType: ErrFileTooLarge,
		},
		{
			name: "file at limit",
			setup: func(t *testing.T) string {
				path := filepath.Join(safeTempDir(t), "exact.toml")
				writeFile(t, path, []byte("0123456789abcdef"), 0o600)
				return path
			},
			maxSize: 16,
			want:    []byte("0123456789abcdef"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			got, err := ReadFile(path, tt.maxSize)
			if tt.errType != nil {
				assert.ErrorIs(t, err, tt.errType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile_NotExist(t *testing.T) {
	_, err := ReadFile(filepath.Join(safeTempDir(t), "missing.toml"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateFile(t *testing.T) {
	dir := safeTempDir(t)
	path := filepath.Join(dir, "run.json")

	f, err := CreateFile(path, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = CreateFile(path, 0o600)
	assert.ErrorIs(t, err, ErrFileExists)
}

func TestCreateFile_SymlinkedDirectory(t *testing.T) {
	dir := safeTempDir(t)
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(realDir, 0o755))
	linkDir := filepath.Join(dir, "logs")
	require.NoError(t, os.Symlink(realDir, linkDir))

	_, err := CreateFile(filepath.Join(linkDir, "run.json"), 0o600)
	assert.ErrorIs(t, err, ErrIsSymlink)

	_, statErr := os.Stat(filepath.Join(realDir, "run.json"))
	assert.True(t, os.IsNotExist(statErr), "no file may be created through the link")
}

func TestCreateFile_DanglingSymlink(t *testing.T) {
	dir := safeTempDir(t)
	link := filepath.Join(dir, "run.json")
	require.NoError(t, os.Symlink(filepath.Join(dir, "elsewhere"), link))

	_, err := CreateFile(link, 0o600)
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "elsewhere"))
	assert.True(t, os.IsNotExist(statErr))
}
