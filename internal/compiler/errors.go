package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/troupe/pkg/schema"
)

// DefinitionError reports a malformed definition record (not a map, unknown
// top-level field, missing actor kind).
type DefinitionError struct {
	Path   string
	Field  string
	Reason string
}

// Location returns the path of the offending record or field.
func (e *DefinitionError) Location() string {
	if e.Field == "" {
		if e.Path == "" {
			return "root"
		}
		return e.Path
	}
	return schema.JoinPath(e.Path, e.Field)
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location(), e.Reason)
}

// BuildError aggregates every problem found while building a tree.
type BuildError struct {
	Errors []error
}

func (e *BuildError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d build errors:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *BuildError) Unwrap() []error {
	return e.Errors
}

// Errors returns the individual errors if err is a *BuildError, or err itself.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if be, ok := err.(*BuildError); ok {
		return be.Errors
	}
	return []error{err}
}

func sortErrors(errs []error) {
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Error() < errs[j].Error()
	})
}
