package domain

// Definition is the declarative form of an actor, as written in a workflow file.
//
//	{ "desc": "Wait a minute", "actor": "misc.Sleep", "options": { "sleep": 60 } }
//
// Composite kinds embed further definitions inside their options (e.g. the
// "acts" list of group.Sync), so a single Definition describes a whole tree.
type Definition struct {
	Description string         `json:"desc,omitempty" yaml:"desc,omitempty" mapstructure:"desc"`
	Actor       string         `json:"actor" yaml:"actor" mapstructure:"actor"`
	Options     map[string]any `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
}
