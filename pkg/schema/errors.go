package schema

import (
	"fmt"
	"strings"
)

// MissingRequiredOptionError is returned when a required option is absent.
type MissingRequiredOptionError struct {
	Path   string // Node path, e.g. "acts[2]"
	Option string
}

// Location returns the full path of the offending option.
func (e *MissingRequiredOptionError) Location() string {
	return OptionPath(e.Path, e.Option)
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("%s: missing required option %q", e.Location(), e.Option)
}

// InvalidOptionTypeError is returned when an option value has the wrong type.
type InvalidOptionTypeError struct {
	Path     string
	Option   string
	Expected string // Name of the declared type
	Actual   string // Configuration-level type of the value
	Reason   string
}

// Location returns the full path of the offending option.
func (e *InvalidOptionTypeError) Location() string {
	return OptionPath(e.Path, e.Option)
}

func (e *InvalidOptionTypeError) Error() string {
	msg := fmt.Sprintf("%s: invalid type for option %q: expected %s, got %s", e.Location(), e.Option, e.Expected, e.Actual)
	if e.Reason != "" && !strings.HasPrefix(e.Reason, "expected ") {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// UnknownOptionError is returned for option names the kind does not declare.
type UnknownOptionError struct {
	Path   string
	Option string
}

// Location returns the full path of the offending option.
func (e *UnknownOptionError) Location() string {
	return OptionPath(e.Path, e.Option)
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%s: unknown option %q", e.Location(), e.Option)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

// JoinPath appends elem to a dotted path.
func JoinPath(base, elem string) string {
	if base == "" {
		return elem
	}
	return base + "." + elem
}

// OptionPath returns the location of an option below a node path.
func OptionPath(nodePath, option string) string {
	return JoinPath(nodePath, "options."+option)
}
