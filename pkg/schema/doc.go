// Package schema declares and validates the options accepted by actor kinds.
//
// It defines a small type system with built-in types (string, int, float, bool,
// duration), containers (slices, maps, unions) and a marker type for nested
// actor lists. An Options schema maps option names to declarations carrying
// the type, whether the option is required, a default and a description.
//
// Basic usage:
//
//	opts := schema.Options{
//	    "repo":           schema.Required(schema.String(), "Repository to clean"),
//	    "number_to_keep": schema.Optional(schema.Int(), 0, "Versions to keep"),
//	}
//
//	values, errs := schema.Validate("acts[0]", opts, raw)
//
// Validate never stops at the first problem: every missing option, type
// mismatch and unknown option name is reported, each tagged with its location
// (e.g. "acts[0].options.repo"). Returned values are normalized, so whole
// numbers decoded from JSON as float64 become int and durations become
// time.Duration.
package schema
