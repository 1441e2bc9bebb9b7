package scaffold

import (
	"io"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/require"
)

const testBase = "/work"

// recordingFS wraps an in-memory filesystem and records every mutating call.
type recordingFS struct {
	inner     *BillyFS
	mutations []string
}

func newRecordingFS() *recordingFS {
	return &recordingFS{inner: NewBillyFS(memfs.New())}
}

func (r *recordingFS) MkdirAll(path string) error {
	r.mutations = append(r.mutations, "mkdir "+path)
	return r.inner.MkdirAll(path)
}

func (r *recordingFS) OpenAppend(path string) (io.WriteCloser, error) {
	r.mutations = append(r.mutations, "open "+path)
	return r.inner.OpenAppend(path)
}

func (r *recordingFS) Copy(src, dst string) error {
	r.mutations = append(r.mutations, "copy "+src+" "+dst)
	return r.inner.Copy(src, dst)
}

func (r *recordingFS) WriteFile(path string, data []byte) error {
	r.mutations = append(r.mutations, "write "+path)
	return r.inner.WriteFile(path, data)
}

func (r *recordingFS) Exists(path string) bool { return r.inner.Exists(path) }

func (r *recordingFS) ReadFile(path string) ([]byte, error) { return r.inner.ReadFile(path) }

func newTestBuilder(t *testing.T, opts ...Option) (*Builder, *recordingFS) {
	t.Helper()
	fs := newRecordingFS()
	opts = append([]Option{WithBasePath(testBase), WithFilesystem(fs)}, opts...)
	b, err := New("awesome_sauce", opts...)
	require.NoError(t, err)
	return b, fs
}

func readString(t *testing.T, fs Filesystem, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
