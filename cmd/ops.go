package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wellmaintained/glustik/internal/errors"
	"github.com/wellmaintained/glustik/internal/ui"
	"github.com/wellmaintained/glustik/pkg/plugin/goproject"
	"github.com/wellmaintained/glustik/pkg/scaffold"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operations a layout can use",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOps(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(errors.GetExitCode(err))
		}
	},
}

var opSources = map[string]string{
	"gomod": "goproject",
	"main":  "goproject",
	"pkg":   "goproject",
}

func runOps(w io.Writer) error {
	b, err := scaffold.New("ops",
		scaffold.WithCheckName(false),
		scaffold.WithContextFunc(goproject.ContextFunc("")),
	)
	if err != nil {
		return errors.NewRuntimeError("creating builder", err)
	}
	if err := goproject.Register(b); err != nil {
		return errors.NewRuntimeError("registering plugin", err)
	}

	var rows [][]string
	for _, name := range b.Registry().Names() {
		source, ok := opSources[name]
		if !ok {
			source = "builtin"
		}
		rows = append(rows, []string{name, source, "@" + name, "!" + name})
	}
	return ui.PrintTable(w, []string{"Operation", "Source", "Key", "Tag"}, rows)
}
