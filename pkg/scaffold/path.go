package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wellmaintained/glustik/internal/pathutil"
)

// ResolvePath returns the filesystem path an operation acts on. An explicit
// path (a string, or a list of segments joined in order) wins; otherwise the
// base path plus the segments of the current traversal position is used.
// Relative explicit paths are taken relative to the base path. The result is
// passed through Substitute with the builder's context.
func (b *Builder) ResolvePath(explicit any) (string, error) {
	raw, err := b.rawPath(explicit)
	if err != nil {
		return "", err
	}
	resolved, err := Substitute(raw, b.context)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", raw, err)
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(b.basePath, resolved)
	}
	if b.confine {
		if _, err := pathutil.Contain(resolved, b.basePath); err != nil {
			return "", fmt.Errorf("%w: %v", ErrPathOutsideBase, err)
		}
	}
	return resolved, nil
}

func (b *Builder) rawPath(explicit any) (string, error) {
	var parts []string
	switch p := explicit.(type) {
	case nil:
	case string:
		if p != "" {
			return p, nil
		}
	case Segment:
		if p != "" {
			return string(p), nil
		}
	case []string:
		parts = p
	case []any:
		for _, seg := range p {
			switch s := seg.(type) {
			case string:
				parts = append(parts, s)
			case Segment:
				parts = append(parts, string(s))
			default:
				return "", fmt.Errorf("%w: list element %T", ErrInvalidPath, seg)
			}
		}
	default:
		return "", fmt.Errorf("%w: got %T", ErrInvalidPath, explicit)
	}
	if len(parts) > 0 {
		return filepath.Join(parts...), nil
	}
	return filepath.Join(append([]string{b.basePath}, b.pathParts...)...), nil
}

// StripTrailingFileSegment returns the parent directory of path when its last
// segment has an extension, and path unchanged otherwise. Leading dots do
// not count, so ".config" is a directory name.
func StripTrailingFileSegment(path string) string {
	if hasExtension(filepath.Base(path)) {
		return filepath.Dir(path)
	}
	return path
}

func hasExtension(name string) bool {
	return filepath.Ext(strings.TrimLeft(name, ".")) != ""
}

func (b *Builder) push(segment string) {
	b.pathParts = append(b.pathParts, segment)
}

func (b *Builder) pop() {
	if n := len(b.pathParts); n > 0 {
		b.pathParts = b.pathParts[:n-1]
	}
}

func (b *Builder) reset() {
	b.pathParts = b.pathParts[:0]
}

// PathParts returns a copy of the current traversal position.
func (b *Builder) PathParts() []string {
	return append([]string(nil), b.pathParts...)
}
