package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

type optionJSON struct {
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// MarshalJSON serializes the schema as a map of option names to their declarations.
func (o Options) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	raw := make(map[string]optionJSON, len(o))
	for name, opt := range o {
		if opt.Type == nil {
			return nil, fmt.Errorf("option %s: type is nil", name)
		}
		def := opt.Default
		if d, ok := def.(time.Duration); ok {
			def = d.String()
		}
		raw[name] = optionJSON{
			Type:        opt.Type.Name(),
			Required:    opt.Required,
			Default:     def,
			Description: opt.Description,
		}
	}

	return json.Marshal(raw)
}
