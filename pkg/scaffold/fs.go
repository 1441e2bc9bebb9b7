package scaffold

import (
	"fmt"
	"io"
	"os"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Filesystem is the set of primitives the built-in operations need.
// Implementations surface I/O errors unchanged.
type Filesystem interface {
	MkdirAll(path string) error
	// OpenAppend opens path for appending, creating it if absent.
	OpenAppend(path string) (io.WriteCloser, error)
	// Copy copies the contents and permission bits of src to dst.
	Copy(src, dst string) error
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the contents of path.
	WriteFile(path string, data []byte) error
}

const (
	dirPerm  os.FileMode = 0755
	filePerm os.FileMode = 0644
)

// BillyFS adapts a billy.Filesystem to Filesystem.
type BillyFS struct {
	fs billy.Filesystem
}

// NewBillyFS wraps fs. Paths handed to it by a Builder are absolute.
func NewBillyFS(fs billy.Filesystem) *BillyFS {
	return &BillyFS{fs: fs}
}

// OSFS returns a Filesystem backed by the host filesystem.
func OSFS() *BillyFS {
	return NewBillyFS(osfs.New("/"))
}

func (b *BillyFS) MkdirAll(path string) error {
	return b.fs.MkdirAll(path, dirPerm)
}

func (b *BillyFS) OpenAppend(path string) (io.WriteCloser, error) {
	return b.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
}

func (b *BillyFS) Copy(src, dst string) error {
	info, err := b.fs.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("copy %s: source is a directory", src)
	}

	in, err := b.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := b.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (b *BillyFS) Exists(path string) bool {
	_, err := b.fs.Stat(path)
	return err == nil
}

func (b *BillyFS) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(b.fs, path)
}

func (b *BillyFS) WriteFile(path string, data []byte) error {
	return util.WriteFile(b.fs, path, data, filePerm)
}
