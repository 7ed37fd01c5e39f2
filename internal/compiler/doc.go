// Package compiler parses declarative workflow definitions and builds the
// executable actor tree from them.
//
// Building happens entirely before execution: every kind is resolved and every
// option validated up front, and all problems are reported together in a
// BuildError, each tagged with its location (e.g. "acts[2].options.sleep").
package compiler
