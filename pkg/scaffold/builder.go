// Package scaffold builds directory trees from declarative layouts.
//
// A Layout is an ordered list of entries. Each entry's key is either a
// literal path Segment or an invocable *Op, and its value decides what
// happens at that position:
//
//	b, _ := scaffold.New("awesome_sauce")
//	layout := scaffold.Layout{
//		{Key: scaffold.Segment("%(name)s"), Value: scaffold.Layout{
//			{Key: scaffold.Segment("__init__.py"), Value: b.Init()},
//			{Key: scaffold.Segment("foo"), Value: scaffold.Layout{
//				{Key: scaffold.Segment("bar"), Value: b.Empty()},
//			}},
//		}},
//	}
//	err := b.Build(layout)
//
// Segments accumulate into the current path as the interpreter descends, and
// %(name)s placeholders in segments and file contents are resolved against
// the builder's Context.
package scaffold

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultInitFileName is the marker file written by the init operation.
const DefaultInitFileName = "__init__.py"

// Builder interprets layouts against a filesystem.
//
// A Builder is not safe for concurrent use: the traversal position and the
// dry-run flag belong to the single call stack of one Build.
type Builder struct {
	name         string
	basePath     string
	context      Context
	safe         bool
	confine      bool
	dryRun       bool
	fs           Filesystem
	logger       *slog.Logger
	reporter     func(Action)
	initFileName string
	registry     *Registry
	builtins     builtins

	pathParts []string
	depth     int
}

type builtins struct {
	empty, init, file, copy, dirs *Op
}

// New returns a Builder for the project called name.
func New(name string, opts ...Option) (*Builder, error) {
	cfg := &builderConfig{
		seed:         Context{},
		safe:         true,
		checkName:    true,
		initFileName: DefaultInitFileName,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.checkName {
		if err := ValidateName(name); err != nil {
			return nil, err
		}
	}

	basePath := cfg.basePath
	if basePath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining base path: %w", err)
		}
		basePath = wd
	}
	basePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("determining base path: %w", err)
	}

	if cfg.fs == nil {
		cfg.fs = OSFS()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	b := &Builder{
		name:         name,
		basePath:     basePath,
		safe:         cfg.safe,
		confine:      cfg.confine,
		fs:           cfg.fs,
		logger:       cfg.logger,
		reporter:     cfg.reporter,
		initFileName: cfg.initFileName,
		registry:     NewRegistry(),
	}

	b.context = Context{"base_path": basePath, "name": name}
	for k, v := range cfg.seed {
		b.context[k] = v
	}
	for _, fn := range cfg.contextFuncs {
		if err := fn(name, b.context); err != nil {
			return nil, fmt.Errorf("building context: %w", err)
		}
	}

	if err := b.registerBuiltins(); err != nil {
		return nil, err
	}
	return b, nil
}

// Name returns the project name the builder was created with.
func (b *Builder) Name() string { return b.name }

// BasePath returns the absolute directory layouts are built under.
func (b *Builder) BasePath() string { return b.basePath }

// Context returns a copy of the builder's context.
func (b *Builder) Context() Context { return b.context.Clone() }

// Set updates a context value.
func (b *Builder) Set(key, value string) { b.context[key] = value }

// Registry returns the operations available to layouts.
func (b *Builder) Registry() *Registry { return b.registry }

// Filesystem returns the filesystem the builder writes to.
func (b *Builder) Filesystem() Filesystem { return b.fs }

// DryRun reports whether filesystem effects are currently suppressed.
func (b *Builder) DryRun() bool { return b.dryRun }

// Logger returns the builder's logger.
func (b *Builder) Logger() *slog.Logger { return b.logger }

// Substitute resolves placeholders in template against override if given,
// otherwise against the builder's context.
func (b *Builder) Substitute(template string, override Context) (string, error) {
	if override != nil {
		return Substitute(template, override)
	}
	return Substitute(template, b.context)
}

// Build interprets node, which must be a Layout. Entries are dispatched on
// the shape of their key and value; nested layouts under literal keys create
// their directory and recurse.
//
// Any error aborts the build. Already created files and directories are left
// in place, and the traversal position is reset.
func (b *Builder) Build(node Value, opts ...BuildOption) (err error) {
	var bc buildConfig
	for _, opt := range opts {
		opt(&bc)
	}

	prevDryRun := b.dryRun
	if bc.dryRun != nil {
		b.dryRun = *bc.dryRun
	}
	b.depth++
	defer func() {
		b.dryRun = prevDryRun
		b.depth--
		if err != nil && b.depth == 0 {
			b.reset()
		}
	}()

	layout, ok := node.(Layout)
	if !ok {
		return fmt.Errorf("%w: got %s", ErrInvalidLayout, describe(node))
	}
	for _, entry := range layout {
		if err := b.dispatch(entry); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) dispatch(entry Entry) error {
	switch key := entry.Key.(type) {
	case *Op:
		return b.handleOpKey(key, entry.Value)
	case Segment:
		return b.handleSegmentKey(key, entry.Value)
	default:
		return fmt.Errorf("%w: %s", ErrNoHandlerForKey, describe(entry.Key))
	}
}

func (b *Builder) handleOpKey(key *Op, value Value) error {
	if t, ok := value.(Tuple); ok {
		value = t.resolve()
	}
	b.logger.Debug("dispatch", "key", key.String(), "value", describe(value))

	switch v := value.(type) {
	case nil:
		return fmt.Errorf("%w: nil value for key %s", ErrNoHandlerForValue, key)
	case Args:
		return key.Call(v)
	default:
		return key.Call(Args{Positional: []any{v}})
	}
}

func (b *Builder) handleSegmentKey(key Segment, value Value) error {
	b.push(string(key))
	defer b.pop()

	if t, ok := value.(Tuple); ok {
		value = t.resolve()
	}
	b.logger.Debug("dispatch", "key", string(key), "value", describe(value))

	switch v := value.(type) {
	case *Op:
		return v.Call(Args{Named: map[string]any{"key": string(key)}})
	case Layout:
		path, err := b.ResolvePath(nil)
		if err != nil {
			return err
		}
		if err := b.makeDir(path); err != nil {
			return err
		}
		return b.Build(v)
	case Call:
		return v.Op.Call(v.Args)
	default:
		return fmt.Errorf("%w: %s under key %q", ErrNoHandlerForValue, describe(value), string(key))
	}
}

func (b *Builder) report(a Action) {
	b.logger.Info("dry run", "op", a.Op, "path", a.Path)
	if b.reporter != nil {
		b.reporter(a)
	}
}
