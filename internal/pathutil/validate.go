// Package pathutil keeps scaffolded paths inside their base directory.
// Layout files are user input; a segment such as ".." or an absolute explicit
// path must not let a build write outside the directory it was pointed at
// (CWE-22).
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideBase is returned when a path resolves outside its base directory.
var ErrOutsideBase = errors.New("path escapes base directory")

// Contain resolves path against baseDir and verifies the result stays within
// baseDir. Relative paths are joined onto baseDir. Symbolic links are
// resolved where they exist on disk, so a link inside baseDir pointing
// elsewhere is rejected. The cleaned absolute path is returned.
func Contain(path, baseDir string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	if baseDir == "" {
		return "", fmt.Errorf("base directory cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: %q contains a NUL byte", ErrOutsideBase, path)
	}

	base, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return "", fmt.Errorf("cannot resolve base directory: %w", err)
	}

	abs := filepath.Clean(path)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(base, abs)
	}

	if !within(abs, base) {
		return "", fmt.Errorf("%w: %s is not within %s", ErrOutsideBase, path, baseDir)
	}

	resolvedBase := resolveExisting(base)
	if resolved := resolveExisting(abs); !within(resolved, resolvedBase) {
		return "", fmt.Errorf("%w: %s resolves to %s", ErrOutsideBase, path, resolved)
	}
	return abs, nil
}

func within(path, base string) bool {
	if path == base {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(base, string(filepath.Separator))+string(filepath.Separator))
}

// resolveExisting evaluates symlinks on the longest existing prefix of path
// and re-appends the part that does not exist yet.
func resolveExisting(path string) string {
	var rest []string
	cur := path
	for {
		if _, err := os.Lstat(cur); err == nil {
			resolved, err := filepath.EvalSymlinks(cur)
			if err != nil {
				return path
			}
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return path
		}
		rest = append(rest, filepath.Base(cur))
		cur = parent
	}
}
