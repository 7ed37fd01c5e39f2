/*
Package dsl provides a Go DSL for programmatically constructing troupe workflow definitions.

It lets developers describe actor trees with a fluent builder instead of YAML or
JSON files. This is useful for generated workflows, unit tests, and IDE
autocompletion.

Example usage:

	def := dsl.Sync(
		dsl.Sleep(2*time.Second).Desc("Let the old array drain"),
		dsl.Clone("web-blue", "web-green"),
	).Desc("Blue/green swap").Build()

	run, err := engine.Execute(ctx, def, true)

Build never validates: kinds and options are checked by the engine, which
reports every problem at once.
*/
package dsl
