/*
Package troupe is an actor execution engine: it runs workflows declared as a
tree of typed, nested actors.

Every node of a workflow names an actor kind and the options for it. Kinds are
looked up in a registry that declares the options each kind accepts, so a
definition is fully checked (unknown kinds, missing or mistyped options, typos)
before anything runs. Composite kinds such as group.Sync hold further actors in
their "acts" option.

# Concept

A definition goes through three stages:

  - Parse: YAML or JSON bytes become a domain.Definition.
  - Build: the definition is checked against the registry and becomes a tree of
    domain.Node. Every error in the tree is reported at once, tagged with the
    path of the offending node (e.g. "acts[1].options.sleep").
  - Execute: the tree is walked; leaves perform their effect and composites
    decide how their children run. The result mirrors the tree.

# Dry mode

Execute takes a dry flag. It is handed unchanged to every actor of the tree;
leaves honor it by reporting what they would have done instead of doing it.

# Usage

	eng, err := troupe.New()
	if err != nil {
		log.Fatal(err)
	}

	run, err := eng.ExecuteBytes(ctx, []byte(`
	actor: group.Sync
	options:
	  acts:
	    - actor: misc.Sleep
	      options: {sleep: 1}
	`), true)
	if err != nil {
		log.Fatal(err) // the definition did not build
	}
	fmt.Println(run.Root.Status)
*/
package troupe
