// Package goproject adds Go project operations to a scaffold.Builder.
//
// It registers gomod, main, and pkg with the builder's registry and extends
// the context with project and module. The interpreter is unchanged; layouts
// refer to these operations by name like any built-in.
package goproject

import (
	"fmt"
	"path/filepath"

	"github.com/wellmaintained/glustik/pkg/scaffold"
)

const (
	goModTemplate = "module %(module)s\n\ngo %(go_version)s\n"

	mainTemplate = `package main

import "fmt"

func main() {
	fmt.Println("%(project)s")
}
`

	docTemplate = "// Package %(package)s is part of %(module)s.\npackage %(package)s\n"
)

// DefaultGoVersion is written to go.mod unless the context sets go_version.
const DefaultGoVersion = "1.25"

// ContextFunc sets project, module, and go_version, keeping values already
// seeded into the context. A non-empty module argument always wins; without
// one, module falls back to a seeded value and then to the project name.
func ContextFunc(module string) scaffold.ContextFunc {
	return func(name string, ctx scaffold.Context) error {
		setDefault(ctx, "project", name)
		if module != "" {
			ctx["module"] = module
		} else {
			setDefault(ctx, "module", name)
		}
		setDefault(ctx, "go_version", DefaultGoVersion)
		return nil
	}
}

func setDefault(ctx scaffold.Context, key, value string) {
	if _, ok := ctx[key]; !ok {
		ctx[key] = value
	}
}

// Register adds the plugin operations to b.
func Register(b *scaffold.Builder) error {
	p := &plugin{b: b}
	reg := b.Registry()
	for name, fn := range map[string]func(scaffold.Args) error{
		"gomod": p.gomod,
		"main":  p.main,
		"pkg":   p.pkg,
	} {
		if _, err := reg.Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

type plugin struct {
	b *scaffold.Builder
}

// gomod writes go.mod. A path without the file name names its directory.
func (p *plugin) gomod(args scaffold.Args) error {
	path, _, err := pathAndKey("gomod", args)
	if err != nil {
		return err
	}
	resolved, err := p.b.ResolvePath(path)
	if err != nil {
		return err
	}
	opts := scaffold.FileOptions{Path: path, Content: goModTemplate}
	if filepath.Base(resolved) != "go.mod" {
		opts.FileName = "go.mod"
	}
	return p.b.MakeFile(opts)
}

// main writes main.go for a command.
func (p *plugin) main(args scaffold.Args) error {
	path, _, err := pathAndKey("main", args)
	if err != nil {
		return err
	}
	resolved, err := p.b.ResolvePath(path)
	if err != nil {
		return err
	}
	opts := scaffold.FileOptions{Path: path, Content: mainTemplate}
	if filepath.Ext(resolved) != ".go" {
		opts.FileName = "main.go"
	}
	return p.b.MakeFile(opts)
}

// pkg creates a package directory named after the entry key, with a doc.go
// declaring it. The key may hold placeholders.
func (p *plugin) pkg(args scaffold.Args) error {
	path, key, err := pathAndKey("pkg", args)
	if err != nil {
		return err
	}
	resolved, err := p.b.ResolvePath(path)
	if err != nil {
		return err
	}
	name, err := p.b.Substitute(key, nil)
	if err != nil {
		return err
	}
	if name == "" {
		name = filepath.Base(resolved)
	}
	if err := scaffold.ValidateName(name); err != nil {
		return fmt.Errorf("pkg: %w", err)
	}
	// The traversal position already ends with the key.
	if filepath.Base(resolved) != name {
		resolved = filepath.Join(resolved, name)
	}
	return p.b.MakeFile(scaffold.FileOptions{
		Path:     resolved,
		FileName: "doc.go",
		Content:  docTemplate,
		Context:  scaffold.Context{"package": name},
	})
}

func pathAndKey(op string, args scaffold.Args) (any, string, error) {
	if len(args.Positional) > 2 {
		return nil, "", fmt.Errorf("%w: %s takes at most 2 arguments", scaffold.ErrInvalidArgument, op)
	}
	var path any
	var key string
	if len(args.Positional) > 0 {
		path = args.Positional[0]
	}
	if len(args.Positional) > 1 {
		key = fmt.Sprint(args.Positional[1])
	}
	for name, v := range args.Named {
		switch name {
		case "path":
			path = v
		case "key":
			key = fmt.Sprint(v)
		default:
			return nil, "", fmt.Errorf("%w: %s got unexpected argument %q", scaffold.ErrInvalidArgument, op, name)
		}
	}
	return path, key, nil
}
