package pathutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestContain(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "subdir")
	if err := os.Mkdir(subDir, 0755); err != nil {
		t.Fatalf("failed to create temp subdirectory: %v", err)
	}

	escapeLinkPath := filepath.Join(tmpDir, "escape_link")
	haveEscapeLink := os.Symlink(os.TempDir(), escapeLinkPath) == nil

	tests := []struct {
		name      string
		path      string
		baseDir   string
		want      string
		wantErr   bool
		errTarget error
	}{
		{
			name:    "relative path is joined onto base",
			path:    "file.txt",
			baseDir: tmpDir,
			want:    filepath.Join(tmpDir, "file.txt"),
		},
		{
			name:    "nested path that does not exist yet",
			path:    "subdir/pkg/deep/__init__.py",
			baseDir: tmpDir,
			want:    filepath.Join(subDir, "pkg", "deep", "__init__.py"),
		},
		{
			name:    "absolute path within base",
			path:    filepath.Join(subDir, "x"),
			baseDir: tmpDir,
			want:    filepath.Join(subDir, "x"),
		},
		{
			name:    "base itself",
			path:    ".",
			baseDir: tmpDir,
			want:    tmpDir,
		},
		{
			name:    "dot segments that stay inside",
			path:    "subdir/../other",
			baseDir: tmpDir,
			want:    filepath.Join(tmpDir, "other"),
		},
		{
			name:      "parent traversal",
			path:      "../outside",
			baseDir:   tmpDir,
			wantErr:   true,
			errTarget: ErrOutsideBase,
		},
		{
			name:      "absolute path outside base",
			path:      "/etc/passwd",
			baseDir:   tmpDir,
			wantErr:   true,
			errTarget: ErrOutsideBase,
		},
		{
			name:      "sibling sharing the base prefix",
			path:      tmpDir + "-sibling/file",
			baseDir:   tmpDir,
			wantErr:   true,
			errTarget: ErrOutsideBase,
		},
		{
			name:      "NUL byte",
			path:      "file\x00.txt",
			baseDir:   tmpDir,
			wantErr:   true,
			errTarget: ErrOutsideBase,
		},
		{
			name:    "empty path",
			path:    "",
			baseDir: tmpDir,
			wantErr: true,
		},
		{
			name:    "empty base",
			path:    "file.txt",
			baseDir: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Contain(tt.path, tt.baseDir)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Contain(%q) = %q, want error", tt.path, got)
				}
				if tt.errTarget != nil && !errors.Is(err, tt.errTarget) {
					t.Errorf("error %v does not wrap %v", err, tt.errTarget)
				}
				return
			}
			if err != nil {
				t.Fatalf("Contain(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Contain(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	t.Run("symlink escaping base", func(t *testing.T) {
		if !haveEscapeLink {
			t.Skip("symlinks not supported")
		}
		_, err := Contain(filepath.Join("escape_link", "file"), tmpDir)
		if !errors.Is(err, ErrOutsideBase) {
			t.Errorf("expected ErrOutsideBase, got %v", err)
		}
	})
}
