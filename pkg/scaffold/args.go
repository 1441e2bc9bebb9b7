package scaffold

import (
	"fmt"
	"strconv"
)

// bound holds an operation's arguments keyed by parameter name.
type bound struct {
	op     string
	values map[string]any
}

// bind maps positional arguments onto params in order and checks named
// arguments against params, the way keyword arguments bind.
func bind(op string, args Args, params ...string) (bound, error) {
	b := bound{op: op, values: make(map[string]any, len(params))}
	if len(args.Positional) > len(params) {
		return b, fmt.Errorf("%w: %s takes at most %d arguments, got %d", ErrInvalidArgument, op, len(params), len(args.Positional))
	}
	for i, v := range args.Positional {
		b.values[params[i]] = v
	}
	for name, v := range args.Named {
		if !contains(params, name) {
			return b, fmt.Errorf("%w: %s got unexpected argument %q", ErrInvalidArgument, op, name)
		}
		if _, dup := b.values[name]; dup {
			return b, fmt.Errorf("%w: %s got multiple values for %q", ErrInvalidArgument, op, name)
		}
		b.values[name] = v
	}
	return b, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (b bound) get(name string) any {
	return b.values[name]
}

func (b bound) str(name string) (string, error) {
	switch v := b.values[name].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case Segment:
		return string(v), nil
	default:
		return "", fmt.Errorf("%w: %s argument %q must be a string, got %T", ErrInvalidArgument, b.op, name, v)
	}
}

func (b bound) boolean(name string) (bool, error) {
	switch v := b.values[name].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%w: %s argument %q: %v", ErrInvalidArgument, b.op, name, err)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("%w: %s argument %q must be a bool, got %T", ErrInvalidArgument, b.op, name, v)
	}
}

func (b bound) context(name string) (Context, error) {
	switch v := b.values[name].(type) {
	case nil:
		return nil, nil
	case Context:
		return v, nil
	case map[string]string:
		return Context(v), nil
	case map[string]any:
		ctx := make(Context, len(v))
		for k, val := range v {
			switch s := val.(type) {
			case string:
				ctx[k] = s
			case nil:
				ctx[k] = ""
			default:
				ctx[k] = fmt.Sprint(s)
			}
		}
		return ctx, nil
	default:
		return nil, fmt.Errorf("%w: %s argument %q must be a mapping, got %T", ErrInvalidArgument, b.op, name, v)
	}
}
