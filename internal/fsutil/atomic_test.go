package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tmsim/internal/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "saida.txt")

	require.NoError(t, fsutil.WriteFileAtomic(path, []byte("aceita\n"), 0o644))
	require.NoError(t, fsutil.WriteFileAtomic(path, []byte("rejeita\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rejeita\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}
