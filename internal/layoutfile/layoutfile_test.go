package layoutfile

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellmaintained/glustik/pkg/scaffold"
)

func newBuilder(t *testing.T) (*scaffold.Builder, scaffold.Filesystem) {
	t.Helper()
	fs := scaffold.NewBillyFS(memfs.New())
	b, err := scaffold.New("awesome_sauce", scaffold.WithBasePath("/out"), scaffold.WithFilesystem(fs))
	require.NoError(t, err)
	return b, fs
}

func TestDecodeShapes(t *testing.T) {
	b, _ := newBuilder(t)

	doc := `
"%(name)s":
  __init__.py: !init
  README.md: !file {content: "# %(name)s\n", context: {extra: "1"}}
  notes.txt: !file [/abs/notes.txt]
  foo:
    bar: !empty
  "@dirs": [x, y]
  "@copy": !args {src: /tmp/foo.txt}
  "@@handle": {}
`
	layout, err := Decode([]byte(doc), b.Registry())
	require.NoError(t, err)
	require.Len(t, layout, 1)
	assert.Equal(t, scaffold.Segment("%(name)s"), layout[0].Key)

	inner, ok := layout[0].Value.(scaffold.Layout)
	require.True(t, ok)
	require.Len(t, inner, 7)

	assert.Equal(t, scaffold.Entry{Key: scaffold.Segment("__init__.py"), Value: b.Init()}, inner[0])

	readme, ok := inner[1].Value.(scaffold.Call)
	require.True(t, ok)
	assert.Same(t, b.File(), readme.Op)
	assert.Equal(t, "# %(name)s\n", readme.Args.Named["content"])
	assert.Equal(t, map[string]any{"extra": "1"}, readme.Args.Named["context"])

	notes, ok := inner[2].Value.(scaffold.Call)
	require.True(t, ok)
	assert.Equal(t, []any{"/abs/notes.txt"}, notes.Args.Positional)

	assert.Equal(t, scaffold.Layout{{Key: scaffold.Segment("bar"), Value: b.Empty()}}, inner[3].Value)

	assert.Same(t, b.Dirs(), inner[4].Key)
	assert.Equal(t, scaffold.List{scaffold.Segment("x"), scaffold.Segment("y")}, inner[4].Value)

	assert.Same(t, b.Copy(), inner[5].Key)
	assert.Equal(t, scaffold.Args{Named: map[string]any{"src": "/tmp/foo.txt"}}, inner[5].Value)

	assert.Equal(t, scaffold.Segment("@handle"), inner[6].Key)
	assert.Equal(t, scaffold.Layout{}, inner[6].Value)
}

func TestDecodeErrors(t *testing.T) {
	b, _ := newBuilder(t)

	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed yaml", doc: "a: [b"},
		{name: "empty document", doc: ""},
		{name: "top level sequence", doc: "- a\n- b\n"},
		{name: "unknown operation tag", doc: "a: !nope\n"},
		{name: "unknown operation key", doc: "\"@nope\": {}\n"},
		{name: "args under literal key", doc: "a: !args {src: x}\n"},
		{name: "mapping key", doc: "? {a: b}\n: c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), b.Registry())
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestDecodeTopLevelSequenceIsInvalidLayout(t *testing.T) {
	b, _ := newBuilder(t)
	_, err := Decode([]byte("- a\n"), b.Registry())
	assert.ErrorIs(t, err, scaffold.ErrInvalidLayout)
}

func TestDecodeAndBuild(t *testing.T) {
	b, fs := newBuilder(t)

	doc := `
"%(name)s":
  __init__.py: !init
  config:
    settings.py: !file {content: "NAME = '%(name)s'\n"}
  "@dirs": [media, templates]
`
	layout, err := Decode([]byte(doc), b.Registry())
	require.NoError(t, err)
	require.NoError(t, b.Build(layout))

	assert.True(t, fs.Exists("/out/awesome_sauce/__init__.py"))
	assert.True(t, fs.Exists("/out/awesome_sauce/media"))
	assert.True(t, fs.Exists("/out/awesome_sauce/templates"))

	data, err := fs.ReadFile("/out/awesome_sauce/config/settings.py")
	require.NoError(t, err)
	assert.Equal(t, "NAME = 'awesome_sauce'\n", string(data))
}

func TestDecodedScalarValueHasNoHandler(t *testing.T) {
	b, _ := newBuilder(t)

	layout, err := Decode([]byte("a: plain\n"), b.Registry())
	require.NoError(t, err)
	assert.ErrorIs(t, b.Build(layout), scaffold.ErrNoHandlerForValue)
}
