package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSource_RequiresExactlyOneSource(t *testing.T) {
	t.Parallel()

	_, err := loadSource("", false, false)
	require.ErrorIs(t, err, ErrNoInputSource)

	_, err = loadSource("schema.ts", true, false)
	require.ErrorIs(t, err, ErrMultipleInputSources)
}

func TestLoadSource_ReadsFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schema.ts")
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;"), 0o600))

	src, err := loadSource(path, false, false)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;", src)
}

func TestLoadSource_RejectsDirectoryPath(t *testing.T) {
	t.Parallel()

	_, err := loadSource(t.TempDir(), false, false)
	require.ErrorIs(t, err, ErrDirectoryPath)
}
