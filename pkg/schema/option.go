package schema

import "time"

// Option declares a single accepted option of an actor kind.
type Option struct {
	Type        Type
	Required    bool
	Default     any
	Description string
}

// Options is the schema of an actor kind: option names to their declarations.
// Example: {"sleep": Required(Duration(), "Seconds to wait")}
type Options map[string]Option

// Required declares an option that must be present.
func Required(t Type, description string) Option {
	return Option{Type: t, Required: true, Description: description}
}

// Optional declares an option that falls back to def when absent.
func Optional(t Type, def any, description string) Option {
	return Option{Type: t, Default: def, Description: description}
}

// NormalizedDefault runs the default through the option's type, so a
// defaulted value has the same Go type as an explicit one.
// Returns nil when the option has no default.
func (o Option) NormalizedDefault() (any, error) {
	if o.Default == nil {
		return nil, nil
	}
	return o.Type.Validate(o.Default)
}

// Values holds validated, normalized options for one actor.
type Values map[string]any

// Get returns the raw value for name.
func (v Values) Get(name string) (any, bool) {
	val, ok := v[name]
	return val, ok
}

// String returns the option as a string, or "" if absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the option as an int, or 0 if absent.
func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

// Float returns the option as a float64, or 0 if absent.
func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

// Bool returns the option as a bool, or false if absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Duration returns the option as a time.Duration, or 0 if absent.
func (v Values) Duration(name string) time.Duration {
	d, _ := v[name].(time.Duration)
	return d
}
