package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.hcl", "a.hcl", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644))
	}
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.hcl"), []byte{}, 0o644))

	t.Run("single file passes through", func(t *testing.T) {
		file := filepath.Join(dir, "a.hcl")
		files, err := ExpandPath(file, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{file}, files)
	})

	t.Run("directory walks recursively and sorts", func(t *testing.T) {
		files, err := ExpandPath(dir, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.hcl"),
			filepath.Join(dir, "b.hcl"),
			filepath.Join(sub, "c.hcl"),
		}, files)
	})

	t.Run("missing path errors", func(t *testing.T) {
		_, err := ExpandPath(filepath.Join(dir, "nope"), ".hcl")
		assert.Error(t, err)
	})
}
