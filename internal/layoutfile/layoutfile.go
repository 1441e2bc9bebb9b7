// Package layoutfile decodes YAML layout documents into scaffold layouts.
//
// Mapping keys are literal path segments, except keys starting with "@",
// which name an operation ("@@x" is the literal segment "@x"). Values:
//
//	dir: {}                          nested layout
//	__init__.py: !init               operation reference
//	README.md: !file {content: "x"}  call with named arguments
//	notes.txt: !file [/abs/path]     call with positional arguments
//	"@dirs": [a, b]                  list, passed to the operation as is
//	"@copy": !args {src: /tmp/x}     arguments for the key operation
package layoutfile

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wellmaintained/glustik/pkg/scaffold"
)

// ErrInvalidDocument is returned for documents that are not valid layouts.
var ErrInvalidDocument = errors.New("invalid layout document")

const argsTag = "!args"

// Decode parses data and resolves operation names against reg.
func Decode(data []byte, reg *scaffold.Registry) (scaffold.Layout, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, root.Line, scaffold.ErrInvalidLayout)
	}
	d := decoder{reg: reg}
	return d.layout(root)
}

type decoder struct {
	reg *scaffold.Registry
}

func (d decoder) layout(n *yaml.Node) (scaffold.Layout, error) {
	out := make(scaffold.Layout, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		key, err := d.key(k)
		if err != nil {
			return nil, err
		}
		var value scaffold.Value
		if _, isOp := key.(*scaffold.Op); isOp {
			value, err = d.opKeyValue(v)
		} else {
			value, err = d.value(v)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, scaffold.Entry{Key: key, Value: value})
	}
	return out, nil
}

func (d decoder) key(n *yaml.Node) (scaffold.Key, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: line %d: keys must be scalars", ErrInvalidDocument, n.Line)
	}
	s := n.Value
	switch {
	case strings.HasPrefix(s, "@@"):
		return scaffold.Segment(s[1:]), nil
	case strings.HasPrefix(s, "@"):
		return d.lookup(s[1:], n)
	default:
		return scaffold.Segment(s), nil
	}
}

func (d decoder) lookup(name string, n *yaml.Node) (*scaffold.Op, error) {
	op, err := d.reg.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidDocument, n.Line, err)
	}
	return op, nil
}

func (d decoder) value(n *yaml.Node) (scaffold.Value, error) {
	if name, ok := opTag(n); ok {
		if name == argsTag[1:] {
			return nil, fmt.Errorf("%w: line %d: !args is only valid under an operation key", ErrInvalidDocument, n.Line)
		}
		return d.call(name, n)
	}

	switch n.Kind {
	case yaml.MappingNode:
		return d.layout(n)
	case yaml.SequenceNode:
		list := make(scaffold.List, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := d.value(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return scaffold.Segment(n.Value), nil
	case yaml.AliasNode:
		return d.value(n.Alias)
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported node", ErrInvalidDocument, n.Line)
	}
}

// call decodes a tagged node: a bare tag references the operation, a
// mapping or sequence supplies named or positional arguments.
func (d decoder) call(name string, n *yaml.Node) (scaffold.Value, error) {
	op, err := d.lookup(name, n)
	if err != nil {
		return nil, err
	}
	if n.Kind == yaml.ScalarNode && n.Value == "" {
		return op, nil
	}
	args, err := d.args(n)
	if err != nil {
		return nil, err
	}
	return scaffold.Call{Op: op, Args: args}, nil
}

func (d decoder) opKeyValue(n *yaml.Node) (scaffold.Value, error) {
	if name, ok := opTag(n); ok && name == argsTag[1:] {
		return d.args(n)
	}
	return d.value(n)
}

func (d decoder) args(tagged *yaml.Node) (scaffold.Args, error) {
	// Decode the plain node; the local tag only selected the operation.
	plain := *tagged
	plain.Tag = ""
	n := &plain
	switch n.Kind {
	case yaml.MappingNode:
		var named map[string]any
		if err := n.Decode(&named); err != nil {
			return scaffold.Args{}, fmt.Errorf("%w: line %d: %v", ErrInvalidDocument, n.Line, err)
		}
		return scaffold.Args{Named: named}, nil
	case yaml.SequenceNode:
		var positional []any
		if err := n.Decode(&positional); err != nil {
			return scaffold.Args{}, fmt.Errorf("%w: line %d: %v", ErrInvalidDocument, n.Line, err)
		}
		return scaffold.Args{Positional: positional}, nil
	case yaml.ScalarNode:
		return scaffold.Args{Positional: []any{n.Value}}, nil
	default:
		return scaffold.Args{}, fmt.Errorf("%w: line %d: unsupported arguments", ErrInvalidDocument, n.Line)
	}
}

// opTag returns the operation name of a local tag such as !file.
func opTag(n *yaml.Node) (string, bool) {
	if !strings.HasPrefix(n.Tag, "!") || strings.HasPrefix(n.Tag, "!!") {
		return "", false
	}
	return n.Tag[1:], true
}
