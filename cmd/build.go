package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wellmaintained/glustik/internal/config"
	"github.com/wellmaintained/glustik/internal/env"
	"github.com/wellmaintained/glustik/internal/errors"
	"github.com/wellmaintained/glustik/internal/layoutfile"
	"github.com/wellmaintained/glustik/internal/ui"
	"github.com/wellmaintained/glustik/pkg/plugin/goproject"
	"github.com/wellmaintained/glustik/pkg/scaffold"
)

// buildFlags holds the flags shared by build and plan.
type buildFlags struct {
	name        string
	base        string
	set         []string
	env         bool
	unsafe      bool
	noCheckName bool
	confine     bool
	module      string
	initFile    string
	dryRun      bool
}

var (
	buildOpts buildFlags
	planOpts  buildFlags
)

var buildCmd = &cobra.Command{
	Use:   "build LAYOUT --name NAME [flags]",
	Short: "Scaffold a project from a layout file",
	Long: `Build the directories and files described by a YAML layout.

Mapping keys are path segments; "@op" keys and "!op" tags invoke operations
(empty, dir, init, file, copy, dirs, gomod, main, pkg). Placeholders such as
%(name)s are filled from the context: name, base_path, project, module, and
anything given with --set, --env, or the context section of .glustik.yaml.

Safe mode, on by default, leaves existing directories untouched.`,
	Example: `  # Scaffold into the current directory
  glustik build layout.yaml --name awesome_sauce

  # Scaffold elsewhere with extra context
  glustik build layout.yaml --name widget --base ~/src --set author="Jane Doe"

  # Print the effects without touching the disk
  glustik build layout.yaml --name widget --dry-run`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateBuildFlags(&buildOpts)
	},
	Run: func(cmd *cobra.Command, args []string) {
		actions, err := runBuild(args[0], &buildOpts, buildOpts.dryRun)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(errors.GetExitCode(err))
		}
		if buildOpts.dryRun {
			for _, a := range actions {
				ui.Action(os.Stdout, a)
			}
			return
		}
		ui.Success("Built %s\n", buildOpts.name)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan LAYOUT --name NAME [flags]",
	Short: "Show what a build would do",
	Long: `Plan runs a build in dry-run mode and prints a table of the directories,
files, and copies it would create. Nothing is written.`,
	Example: `  glustik plan layout.yaml --name awesome_sauce`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return validateBuildFlags(&planOpts)
	},
	Run: func(cmd *cobra.Command, args []string) {
		actions, err := runBuild(args[0], &planOpts, true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(errors.GetExitCode(err))
		}
		if err := printPlan(os.Stdout, actions); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func validateBuildFlags(f *buildFlags) error {
	var errs []error

	if strings.TrimSpace(f.name) == "" {
		errs = append(errs, fmt.Errorf("--name is required"))
	}
	for _, kv := range f.set {
		if k, _, ok := strings.Cut(kv, "="); !ok || k == "" {
			errs = append(errs, fmt.Errorf("--set %q must have the form key=value", kv))
		}
	}

	if len(errs) > 0 {
		combined := "Validation errors:\n"
		for _, err := range errs {
			combined += fmt.Sprintf("  - %s\n", err)
		}
		return errors.NewValidationError(combined, nil)
	}
	return nil
}

func runBuild(layoutPath string, f *buildFlags, dryRun bool) ([]scaffold.Action, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, errors.NewRuntimeError("loading configuration", err)
	}
	return buildLayout(cfg, layoutPath, f, dryRun, newLogger())
}

// buildLayout decodes the layout file and builds it. The returned actions
// are only populated for dry runs.
func buildLayout(cfg *config.Config, layoutPath string, f *buildFlags, dryRun bool, logger *slog.Logger) ([]scaffold.Action, error) {
	data, err := os.ReadFile(layoutPath)
	if err != nil {
		return nil, errors.NewValidationError("reading layout", err)
	}

	var actions []scaffold.Action
	b, err := newBuilder(cfg, f, logger, func(a scaffold.Action) {
		actions = append(actions, a)
	})
	if err != nil {
		return nil, errors.Classify(err)
	}

	layout, err := layoutfile.Decode(data, b.Registry())
	if err != nil {
		return nil, errors.Classify(err)
	}
	if err := b.Build(layout, scaffold.WithDryRun(dryRun)); err != nil {
		return nil, errors.Classify(err)
	}
	return actions, nil
}

// newBuilder applies the configuration, then the flags. Context values come
// from the configuration file, then the environment, then --set.
func newBuilder(cfg *config.Config, f *buildFlags, logger *slog.Logger, reporter func(scaffold.Action)) (*scaffold.Builder, error) {
	ctx := make(map[string]string, len(cfg.Context))
	for k, v := range cfg.Context {
		ctx[k] = v
	}
	if f.env {
		fromEnv, dropped := env.ContextFromEnviron(os.Environ(), env.ContextPrefix)
		if len(dropped) > 0 {
			ui.Warning("Warning: ignoring sensitive variables: %s\n", strings.Join(dropped, ", "))
		}
		for k, v := range fromEnv {
			ctx[k] = v
		}
	}
	for _, kv := range f.set {
		k, v, _ := strings.Cut(kv, "=")
		ctx[k] = v
	}

	base := cfg.BasePath
	if f.base != "" {
		base = f.base
	}
	module := cfg.Module
	if f.module != "" {
		module = f.module
	}

	opts := []scaffold.Option{
		scaffold.WithBasePath(base),
		scaffold.WithContext(ctx),
		scaffold.WithSafe(cfg.Safe && !f.unsafe),
		scaffold.WithCheckName(cfg.CheckName && !f.noCheckName),
		scaffold.WithConfinement(cfg.Confine || f.confine),
		scaffold.WithContextFunc(goproject.ContextFunc(module)),
		scaffold.WithLogger(logger),
		scaffold.WithReporter(reporter),
	}
	initFile := cfg.InitFileName
	if f.initFile != "" {
		initFile = f.initFile
	}
	if initFile != "" {
		opts = append(opts, scaffold.WithInitFileName(initFile))
	}

	b, err := scaffold.New(f.name, opts...)
	if err != nil {
		return nil, err
	}
	if err := goproject.Register(b); err != nil {
		return nil, err
	}
	return b, nil
}

func printPlan(w io.Writer, actions []scaffold.Action) error {
	if len(actions) == 0 {
		fmt.Fprintln(w, "Nothing to do.")
		return nil
	}
	return ui.PrintTable(w, []string{"Op", "Path", "Detail"}, ui.ActionRows(actions))
}

func addBuildFlags(cmd *cobra.Command, f *buildFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "Project name, available as %(name)s (required)")
	cmd.Flags().StringVar(&f.base, "base", "", "Directory relative paths are resolved against (default: workspace configuration or root)")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "Context value as key=value (repeatable)")
	cmd.Flags().BoolVar(&f.env, "env", false, "Add "+env.ContextPrefix+"* environment variables to the context")
	cmd.Flags().BoolVar(&f.unsafe, "unsafe", false, "Recreate directories that already exist")
	cmd.Flags().BoolVar(&f.noCheckName, "no-check-name", false, "Accept any project name")
	cmd.Flags().BoolVar(&f.confine, "confine", false, "Reject paths outside the base directory")
	cmd.Flags().StringVar(&f.module, "module", "", "Go module path for the gomod operation (default: the project name)")
	cmd.Flags().StringVar(&f.initFile, "init-file", "", "Marker file written by the init operation (default: "+scaffold.DefaultInitFileName+")")
}

func init() {
	addBuildFlags(buildCmd, &buildOpts)
	buildCmd.Flags().BoolVar(&buildOpts.dryRun, "dry-run", false, "Print the effects instead of performing them")
	addBuildFlags(planCmd, &planOpts)
}
