package scaffold

import (
	"fmt"
	"sort"
)

// Registry maps operation names to operations. Layout files refer to
// operations by these names; plugins add their own.
type Registry struct {
	ops map[string]*Op
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Op)}
}

// Register adds fn under name and returns the resulting operation.
func (r *Registry) Register(name string, fn func(Args) error) (*Op, error) {
	if name == "" || fn == nil {
		return nil, fmt.Errorf("%w: operation needs a name and a function", ErrInvalidArgument)
	}
	if _, ok := r.ops[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateOperation, name)
	}
	op := &Op{Name: name, Fn: fn}
	r.ops[name] = op
	return op, nil
}

// Alias makes an existing operation reachable under another name.
func (r *Registry) Alias(alias, name string) error {
	op, err := r.Lookup(name)
	if err != nil {
		return err
	}
	if _, ok := r.ops[alias]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOperation, alias)
	}
	r.ops[alias] = op
	return nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (*Op, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}

// Names returns the registered names in sorted order, aliases included.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
