package scaffold

import (
	"fmt"
)

// Key is the key of a layout entry. It is either a literal path Segment or
// an invocable *Op.
type Key interface {
	isKey()
}

// Value is the value of a layout entry: a nested Layout, an invocable *Op,
// a Call, an Args tuple, a Segment, a List, or a raw Tuple.
type Value interface {
	isValue()
}

// Segment is a literal path segment. It may contain %(name)s placeholders,
// which are resolved when the path is used, not when the layout is built.
type Segment string

func (Segment) isKey()   {}
func (Segment) isValue() {}

// Entry is a single key/value pair of a Layout.
type Entry struct {
	Key   Key
	Value Value
}

// Layout is a mapping node. Entries are independent of each other and are
// processed in declaration order.
type Layout []Entry

func (Layout) isValue() {}

// Args holds the arguments an Op is invoked with. Used as a Value under an
// invocable key, it is the two-element call-tuple (positional, named).
type Args struct {
	Positional []any
	Named      map[string]any
}

func (Args) isValue() {}

// Call is the three-element call-tuple (operation, positional, named).
type Call struct {
	Op   *Op
	Args Args
}

func (Call) isValue() {}

// List is a sequence of values, consumed by the dirs operation.
type List []Value

func (List) isValue() {}

// Tuple is an untyped tuple, typically produced by dynamic construction.
// It is resolved at dispatch time: three elements headed by an *Op become a
// Call, two elements (positional, named) become Args. Any other shape has no
// handler.
type Tuple []any

func (Tuple) isValue() {}

// Op is a named invocable operation.
type Op struct {
	Name string
	Fn   func(Args) error
}

func (*Op) isKey()   {}
func (*Op) isValue() {}

// Call invokes the operation with the given arguments.
func (o *Op) Call(args Args) error {
	if o == nil || o.Fn == nil {
		return fmt.Errorf("%w: nil operation", ErrNoHandlerForValue)
	}
	return o.Fn(args)
}

func (o *Op) String() string {
	if o == nil {
		return "<nil op>"
	}
	return o.Name
}

func (t Tuple) resolve() Value {
	switch len(t) {
	case 3:
		op, ok := t[0].(*Op)
		if !ok {
			return t
		}
		pos, okPos := positional(t[1])
		named, okNamed := namedArgs(t[2])
		if okPos && okNamed {
			return Call{Op: op, Args: Args{Positional: pos, Named: named}}
		}
	case 2:
		pos, okPos := positional(t[0])
		named, okNamed := namedArgs(t[1])
		if okPos && okNamed {
			return Args{Positional: pos, Named: named}
		}
	}
	return t
}

func positional(v any) ([]any, bool) {
	switch p := v.(type) {
	case nil:
		return nil, true
	case []any:
		return p, true
	case []string:
		out := make([]any, len(p))
		for i, s := range p {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

func namedArgs(v any) (map[string]any, bool) {
	switch n := v.(type) {
	case nil:
		return nil, true
	case map[string]any:
		return n, true
	case map[string]string:
		out := make(map[string]any, len(n))
		for k, s := range n {
			out[k] = s
		}
		return out, true
	case Context:
		out := make(map[string]any, len(n))
		for k, s := range n {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case Segment:
		return fmt.Sprintf("segment %q", string(x))
	case *Op:
		return fmt.Sprintf("operation %s", x)
	case Layout:
		return fmt.Sprintf("layout of %d entries", len(x))
	case Call:
		return fmt.Sprintf("call of %s", x.Op)
	case Args:
		return fmt.Sprintf("args (%d positional, %d named)", len(x.Positional), len(x.Named))
	case List:
		return fmt.Sprintf("list of %d values", len(x))
	case Tuple:
		return fmt.Sprintf("tuple of %d elements", len(x))
	default:
		return fmt.Sprintf("%T", v)
	}
}
