package scaffold

import (
	"fmt"
	"strings"
)

// Context maps placeholder names to substitution values.
type Context map[string]string

// Clone returns a copy of the context.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a copy of c with override applied on top. Neither c nor
// override is modified.
func (c Context) Merge(override Context) Context {
	out := c.Clone()
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Substitute replaces %(name)s placeholders in template with values from ctx.
// %% yields a literal percent sign. A placeholder without a value fails with
// ErrMissingPlaceholder; any other use of % fails with ErrMalformedTemplate.
func Substitute(template string, ctx Context) (string, error) {
	if template == "" {
		return "", nil
	}
	if !strings.Contains(template, "%") {
		return template, nil
	}

	var sb strings.Builder
	sb.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			sb.WriteByte(c)
			continue
		}
		if i+1 >= len(template) {
			return "", fmt.Errorf("%w: trailing %% at offset %d", ErrMalformedTemplate, i)
		}
		switch template[i+1] {
		case '%':
			sb.WriteByte('%')
			i++
		case '(':
			end := strings.IndexByte(template[i+2:], ')')
			if end < 0 {
				return "", fmt.Errorf("%w: unterminated placeholder at offset %d", ErrMalformedTemplate, i)
			}
			name := template[i+2 : i+2+end]
			conv := i + 2 + end + 1
			if conv >= len(template) || template[conv] != 's' {
				return "", fmt.Errorf("%w: placeholder %q must end with s", ErrMalformedTemplate, name)
			}
			value, ok := ctx[name]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrMissingPlaceholder, name)
			}
			sb.WriteString(value)
			i = conv
		default:
			return "", fmt.Errorf("%w: unsupported format %q at offset %d", ErrMalformedTemplate, template[i:i+2], i)
		}
	}
	return sb.String(), nil
}
