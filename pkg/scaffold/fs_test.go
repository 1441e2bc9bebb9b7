package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillyFSMemory(t *testing.T) {
	fs := NewBillyFS(memfs.New())

	require.NoError(t, fs.MkdirAll("/a/b"))
	assert.True(t, fs.Exists("/a/b"))
	assert.False(t, fs.Exists("/a/c"))

	require.NoError(t, fs.WriteFile("/a/b/src.txt", []byte("data")))
	require.NoError(t, fs.Copy("/a/b/src.txt", "/a/dst.txt"))

	got, err := fs.ReadFile("/a/dst.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	assert.Error(t, fs.Copy("/a/b", "/a/x"))
	assert.Error(t, fs.Copy("/missing", "/a/x"))
}

func TestBillyFSAppendOnDisk(t *testing.T) {
	fs := OSFS()
	path := filepath.Join(t.TempDir(), "log.txt")

	for _, chunk := range []string{"one\n", "two\n"} {
		w, err := fs.OpenAppend(path)
		require.NoError(t, err)
		_, err = w.Write([]byte(chunk))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))

	require.NoError(t, fs.WriteFile(path, []byte("reset")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "reset", string(data))
}
