package scaffold

import (
	"fmt"
	"log/slog"
)

// ContextFunc extends the context of a new Builder. It runs after the
// name, base_path, and seed values are in place.
type ContextFunc func(name string, ctx Context) error

// Action describes a filesystem effect a dry run would have performed.
type Action struct {
	Op      string
	Path    string
	Content string
}

type builderConfig struct {
	basePath     string
	seed         Context
	safe         bool
	checkName    bool
	confine      bool
	fs           Filesystem
	contextFuncs []ContextFunc
	logger       *slog.Logger
	reporter     func(Action)
	initFileName string
}

// Option configures a Builder.
type Option func(*builderConfig) error

// WithBasePath sets the directory layouts are built under. Defaults to the
// working directory.
func WithBasePath(path string) Option {
	return func(c *builderConfig) error {
		c.basePath = path
		return nil
	}
}

// WithContext seeds the context. Seed values override base_path and name.
func WithContext(ctx map[string]string) Option {
	return func(c *builderConfig) error {
		for k, v := range ctx {
			c.seed[k] = v
		}
		return nil
	}
}

// WithSafe toggles safe mode. In safe mode, directory creation skips paths
// that already exist. Defaults to true.
func WithSafe(safe bool) Option {
	return func(c *builderConfig) error {
		c.safe = safe
		return nil
	}
}

// WithCheckName toggles validation of the builder name. Defaults to true.
func WithCheckName(check bool) Option {
	return func(c *builderConfig) error {
		c.checkName = check
		return nil
	}
}

// WithConfinement rejects any resolved path outside the base path.
func WithConfinement(confine bool) Option {
	return func(c *builderConfig) error {
		c.confine = confine
		return nil
	}
}

// WithFilesystem replaces the host filesystem.
func WithFilesystem(fs Filesystem) Option {
	return func(c *builderConfig) error {
		if fs == nil {
			return fmt.Errorf("%w: nil filesystem", ErrInvalidArgument)
		}
		c.fs = fs
		return nil
	}
}

// WithContextFunc adds a context construction step. Steps run in the order
// they were given.
func WithContextFunc(fn ContextFunc) Option {
	return func(c *builderConfig) error {
		if fn != nil {
			c.contextFuncs = append(c.contextFuncs, fn)
		}
		return nil
	}
}

// WithLogger sets the logger. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(c *builderConfig) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithReporter receives the actions skipped by dry runs.
func WithReporter(fn func(Action)) Option {
	return func(c *builderConfig) error {
		c.reporter = fn
		return nil
	}
}

// WithInitFileName changes the marker file written by the init operation.
func WithInitFileName(name string) Option {
	return func(c *builderConfig) error {
		if name == "" {
			return fmt.Errorf("%w: empty init file name", ErrInvalidArgument)
		}
		c.initFileName = name
		return nil
	}
}

// BuildOption configures a single Build call.
type BuildOption func(*buildConfig)

type buildConfig struct {
	dryRun *bool
}

// WithDryRun overrides the dry-run flag for the duration of a Build call.
// Without it, the current setting is inherited.
func WithDryRun(dryRun bool) BuildOption {
	return func(c *buildConfig) {
		c.dryRun = &dryRun
	}
}
