package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileOptions configures MakeFile.
type FileOptions struct {
	// Path is a string or a list of segments. Empty means the current
	// traversal position.
	Path any
	// FileName, if set, is joined onto Path, which then names a directory.
	FileName string
	Content  string
	// TemplatePath names a file whose contents are substituted and written
	// after Content.
	TemplatePath string
	// Context is merged onto a copy of the builder's context for this file.
	Context Context
}

// CopyOptions configures CopyAndTemplate.
type CopyOptions struct {
	Path any
	Src  string
	// Contextualize substitutes placeholders in the copied file.
	Contextualize bool
	Context       Context
}

func (b *Builder) registerBuiltins() error {
	var err error
	register := func(name string, fn func(Args) error) *Op {
		if err != nil {
			return nil
		}
		var op *Op
		op, err = b.registry.Register(name, fn)
		return op
	}

	b.builtins = builtins{
		empty: register("empty", b.emptyOp),
		init:  register("init", b.initOp),
		file:  register("file", b.fileOp),
		copy:  register("copy", b.copyOp),
		dirs:  register("dirs", b.dirsOp),
	}
	if err != nil {
		return err
	}
	return b.registry.Alias("dir", "empty")
}

// Empty returns the operation that creates an empty directory.
func (b *Builder) Empty() *Op { return b.builtins.empty }

// Init returns the operation that drops an empty marker file.
func (b *Builder) Init() *Op { return b.builtins.init }

// File returns the operation that creates a file with templated content.
func (b *Builder) File() *Op { return b.builtins.file }

// Copy returns the operation that copies and optionally templatizes a file.
func (b *Builder) Copy() *Op { return b.builtins.copy }

// Dirs returns the operation that builds a set of directories.
func (b *Builder) Dirs() *Op { return b.builtins.dirs }

// MakeEmptyDir creates the directory at path, along with any missing
// parents. A trailing segment with an extension is treated as a file name
// and only its directory is created. In safe mode an existing directory is
// skipped without error.
func (b *Builder) MakeEmptyDir(path any) error {
	p, err := b.ResolvePath(path)
	if err != nil {
		return err
	}
	return b.makeDir(StripTrailingFileSegment(p))
}

func (b *Builder) makeDir(path string) error {
	if !b.isSafe(path) {
		b.logger.Debug("skipping existing path", "path", path)
		return nil
	}
	if b.dryRun {
		b.report(Action{Op: "makedirs", Path: path})
		return nil
	}
	if err := b.fs.MkdirAll(path); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

func (b *Builder) isSafe(path string) bool {
	return !b.safe || !b.fs.Exists(path)
}

// MakeInitFile creates an empty marker file. If path does not already end
// with the marker file name, the marker is placed inside path.
func (b *Builder) MakeInitFile(path any) error {
	p, err := b.ResolvePath(path)
	if err != nil {
		return err
	}
	if err := b.makeDir(StripTrailingFileSegment(p)); err != nil {
		return err
	}
	if !strings.HasSuffix(p, b.initFileName) {
		p = filepath.Join(p, b.initFileName)
	}
	if b.dryRun {
		b.report(Action{Op: "create", Path: p})
		return nil
	}
	return b.appendFile(p, nil)
}

// MakeFile creates a file, or appends to it when it already exists, and
// writes the substituted Content followed by the substituted template.
func (b *Builder) MakeFile(opts FileOptions) error {
	p, err := b.ResolvePath(opts.Path)
	if err != nil {
		return err
	}
	if opts.FileName != "" {
		if err := b.makeDir(p); err != nil {
			return err
		}
		p = filepath.Join(p, opts.FileName)
	} else if err := b.makeDir(filepath.Dir(p)); err != nil {
		return err
	}

	ctx := b.context
	if opts.Context != nil {
		ctx = b.context.Merge(opts.Context)
	}

	var chunks []string
	if opts.Content != "" {
		s, err := Substitute(opts.Content, ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", p, err)
		}
		chunks = append(chunks, s)
	}
	if opts.TemplatePath != "" {
		tmpl, err := sourcePath(opts.TemplatePath)
		if err != nil {
			return err
		}
		data, err := b.fs.ReadFile(tmpl)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", opts.TemplatePath, err)
		}
		s, err := Substitute(string(data), ctx)
		if err != nil {
			return fmt.Errorf("rendering %s from %s: %w", p, opts.TemplatePath, err)
		}
		chunks = append(chunks, s)
	}

	if b.dryRun {
		b.report(Action{Op: "open", Path: p})
		for _, c := range chunks {
			b.report(Action{Op: "write", Path: p, Content: c})
		}
		return nil
	}
	return b.appendFile(p, chunks)
}

// sourcePath makes a relative template or copy source absolute against the
// working directory. Destinations are resolved against the base path instead.
func sourcePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving source %s: %w", path, err)
	}
	return abs, nil
}

func (b *Builder) appendFile(path string, chunks []string) error {
	w, err := b.fs.OpenAppend(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	for _, c := range chunks {
		if _, err := w.Write([]byte(c)); err != nil {
			w.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// CopyAndTemplate copies Src to the resolved path. A destination without an
// extension is a directory and receives the file under the source's base
// name. With Contextualize, placeholders in the copy are substituted in place.
func (b *Builder) CopyAndTemplate(opts CopyOptions) error {
	if opts.Src == "" {
		return fmt.Errorf("%w: copy requires src", ErrInvalidArgument)
	}
	src, err := sourcePath(opts.Src)
	if err != nil {
		return err
	}
	p, err := b.ResolvePath(opts.Path)
	if err != nil {
		return err
	}
	dst := p
	if hasExtension(filepath.Base(p)) {
		err = b.makeDir(filepath.Dir(p))
	} else {
		err = b.makeDir(p)
		dst = filepath.Join(p, filepath.Base(opts.Src))
	}
	if err != nil {
		return err
	}

	ctx := b.context
	if opts.Context != nil {
		ctx = b.context.Merge(opts.Context)
	}

	if b.dryRun {
		b.report(Action{Op: "copy", Path: dst, Content: src})
		if !opts.Contextualize {
			return nil
		}
		data, err := b.fs.ReadFile(src)
		if err != nil {
			return fmt.Errorf("reading %s: %w", opts.Src, err)
		}
		s, err := Substitute(string(data), ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", dst, err)
		}
		b.report(Action{Op: "write", Path: dst, Content: s})
		return nil
	}

	if err := b.fs.Copy(src, dst); err != nil {
		return fmt.Errorf("copying %s to %s: %w", opts.Src, dst, err)
	}
	if !opts.Contextualize {
		return nil
	}
	data, err := b.fs.ReadFile(dst)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dst, err)
	}
	s, err := Substitute(string(data), ctx)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", dst, err)
	}
	if err := b.fs.WriteFile(dst, []byte(s)); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

// MakeDirs builds dirs when it is a Layout. For a List, each element must
// be a Segment naming an empty directory at the current position.
func (b *Builder) MakeDirs(dirs Value) error {
	switch d := dirs.(type) {
	case Layout:
		return b.Build(d)
	case List:
		for _, item := range d {
			name, ok := item.(Segment)
			if !ok {
				return fmt.Errorf("%w: list element is %s", ErrInvalidDirsArgument, describe(item))
			}
			if err := b.Build(Layout{{Key: name, Value: b.Empty()}}); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidDirsArgument, describe(dirs))
	}
}

func (b *Builder) emptyOp(args Args) error {
	a, err := bind("empty", args, "path", "key")
	if err != nil {
		return err
	}
	return b.MakeEmptyDir(a.get("path"))
}

func (b *Builder) initOp(args Args) error {
	a, err := bind("init", args, "path", "key")
	if err != nil {
		return err
	}
	return b.MakeInitFile(a.get("path"))
}

func (b *Builder) fileOp(args Args) error {
	a, err := bind("file", args, "path", "key", "file_name", "content", "template_path", "context")
	if err != nil {
		return err
	}
	opts := FileOptions{Path: a.get("path")}
	if opts.FileName, err = a.str("file_name"); err != nil {
		return err
	}
	if opts.Content, err = a.str("content"); err != nil {
		return err
	}
	if opts.TemplatePath, err = a.str("template_path"); err != nil {
		return err
	}
	if opts.Context, err = a.context("context"); err != nil {
		return err
	}
	return b.MakeFile(opts)
}

func (b *Builder) copyOp(args Args) error {
	a, err := bind("copy", args, "path", "key", "src", "contextualize", "context")
	if err != nil {
		return err
	}
	opts := CopyOptions{Path: a.get("path")}
	if opts.Src, err = a.str("src"); err != nil {
		return err
	}
	if opts.Contextualize, err = a.boolean("contextualize"); err != nil {
		return err
	}
	if opts.Context, err = a.context("context"); err != nil {
		return err
	}
	return b.CopyAndTemplate(opts)
}

func (b *Builder) dirsOp(args Args) error {
	a, err := bind("dirs", args, "dirs", "key")
	if err != nil {
		return err
	}
	v, err := dirsValue(a.get("dirs"))
	if err != nil {
		return err
	}
	return b.MakeDirs(v)
}

func dirsValue(v any) (Value, error) {
	switch d := v.(type) {
	case Value:
		return d, nil
	case []string:
		list := make(List, len(d))
		for i, s := range d {
			list[i] = Segment(s)
		}
		return list, nil
	case []any:
		list := make(List, len(d))
		for i, item := range d {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list element %T", ErrInvalidDirsArgument, item)
			}
			list[i] = Segment(s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidDirsArgument, v)
	}
}
