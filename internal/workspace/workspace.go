// Package workspace locates the directory a glustik invocation belongs to.
package workspace

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileName is the per-workspace configuration file.
const ConfigFileName = ".glustik.yaml"

// markers are checked in order in every directory on the way up.
var markers = []string{ConfigFileName, ".git"}

// FindRoot walks up from start looking for a directory holding a
// configuration file or a git checkout. When neither is found the absolute
// form of start is returned.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, m := range markers {
			_, err := os.Stat(filepath.Join(dir, m))
			if err == nil {
				return dir, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
