package scaffold

import "errors"

// Errors returned by the layout interpreter and its built-in operations.
// Callers match them with errors.Is; the returned errors carry the offending
// key, value, or path in their message.
var (
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidLayout       = errors.New("layout must be a mapping")
	ErrNoHandlerForKey     = errors.New("no handler for key")
	ErrNoHandlerForValue   = errors.New("no handler for value")
	ErrInvalidDirsArgument = errors.New("dirs requires a layout or a list of names")
	ErrMissingPlaceholder  = errors.New("missing placeholder")
	ErrMalformedTemplate   = errors.New("malformed template")
	ErrInvalidPath         = errors.New("path must be a string or a list of strings")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrPathOutsideBase     = errors.New("path escapes base path")
	ErrUnknownOperation    = errors.New("unknown operation")
	ErrDuplicateOperation  = errors.New("operation already registered")
)
