package scaffold

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	b, _ := newTestBuilder(t, WithContext(map[string]string{"pkg": "foo-pkg"}))

	tests := []struct {
		name     string
		parts    []string
		explicit any
		want     string
		wantErr  error
	}{
		{name: "base path when nothing accumulated", want: "/work"},
		{name: "accumulated segments", parts: []string{"a", "b"}, want: "/work/a/b"},
		{name: "placeholders in segments", parts: []string{"%(name)s", "%(pkg)s"}, want: "/work/awesome_sauce/foo-pkg"},
		{name: "explicit absolute string", parts: []string{"ignored"}, explicit: "/tmp/out", want: "/tmp/out"},
		{name: "explicit relative string joins base", explicit: "out.txt", want: "/work/out.txt"},
		{name: "explicit segment list", explicit: []string{"/srv", "%(name)s", "x"}, want: "/srv/awesome_sauce/x"},
		{name: "explicit any list", explicit: []any{"/srv", Segment("y")}, want: "/srv/y"},
		{name: "empty string falls back", parts: []string{"a"}, explicit: "", want: "/work/a"},
		{name: "invalid type", explicit: 42, wantErr: ErrInvalidPath},
		{name: "invalid list element", explicit: []any{"a", 1}, wantErr: ErrInvalidPath},
		{name: "missing placeholder", parts: []string{"%(nope)s"}, wantErr: ErrMissingPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b.pathParts = append([]string(nil), tt.parts...)
			defer b.reset()

			got, err := b.ResolvePath(tt.explicit)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got error %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePathConfinement(t *testing.T) {
	b, _ := newTestBuilder(t, WithConfinement(true))

	_, err := b.ResolvePath("inside/file.txt")
	assert.NoError(t, err)

	_, err = b.ResolvePath("../outside")
	assert.ErrorIs(t, err, ErrPathOutsideBase)

	_, err = b.ResolvePath("/etc/passwd")
	assert.ErrorIs(t, err, ErrPathOutsideBase)

	b.pathParts = []string{"..", "escape"}
	defer b.reset()
	_, err = b.ResolvePath(nil)
	assert.ErrorIs(t, err, ErrPathOutsideBase)
}

func TestStripTrailingFileSegment(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/a/b/file.txt", want: "/a/b"},
		{path: "/a/b/dir", want: "/a/b/dir"},
		{path: "/a/b/__init__.py", want: "/a/b"},
		{path: "/a/b/.config", want: "/a/b/.config"},
		{path: "/a/b/%(name)s.wsgi", want: "/a/b"},
		{path: "/a/b/archive.tar.gz", want: "/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTrailingFileSegment(tt.path))
		})
	}
}
