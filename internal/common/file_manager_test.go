package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_ReadFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://example.com\n"), 0644))

	data, err := fm.ReadFile(path, DefaultFileReadOptions())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com\n", string(data))

	_, err = fm.ReadFile(path, FileReadOptions{MaxSize: 4})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file_size", vErr.Field)

	_, err = fm.ReadFile(dir, DefaultFileReadOptions())
	require.ErrorAs(t, err, &vErr)

	_, err = fm.ReadFile(filepath.Join(dir, "missing.txt"), DefaultFileReadOptions())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileManager_WriteFileCreatesParents(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "a", "b", "report.json")

	require.NoError(t, fm.WriteFile(path, []byte("{}"), 0644))
	require.NoError(t, fm.WriteFile(path, []byte("[]"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.True(t, fm.FileExists(path))
}

func TestFileManager_EnsureDirectoryRejectsFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	err := fm.EnsureDirectory(path, 0755)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
