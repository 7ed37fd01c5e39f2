package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parse decodes a workflow definition from YAML or JSON bytes.
// Only the root record is decoded here; nested definitions are decoded by the
// Builder so that their errors carry a path.
func Parse(data []byte) (*domain.Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("failed to parse definition: document is empty")
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}

	def, errs := decodeDefinition(raw, "")
	if len(errs) > 0 {
		return nil, &BuildError{Errors: errs}
	}
	return def, nil
}

// LoadFile reads a definition file. ".json" files are decoded as JSON,
// anything else as YAML.
func LoadFile(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		def, errs := decodeDefinition(raw, "")
		if len(errs) > 0 {
			return nil, &BuildError{Errors: errs}
		}
		return def, nil
	}

	return Parse(data)
}

var definitionKeys = map[string]bool{"desc": true, "actor": true, "options": true}

// decodeDefinition turns one raw record into a Definition.
// Records may already be typed (Definition or *Definition) when trees are
// assembled in Go code.
func decodeDefinition(raw any, path string) (*domain.Definition, []error) {
	switch v := raw.(type) {
	case *domain.Definition:
		if v == nil {
			return nil, []error{&DefinitionError{Path: path, Reason: "definition is null"}}
		}
		return v, checkActor(v, path)
	case domain.Definition:
		return &v, checkActor(&v, path)
	case nil:
		return nil, []error{&DefinitionError{Path: path, Reason: "definition is null"}}
	}

	record, ok := raw.(map[string]any)
	if !ok {
		return nil, []error{&DefinitionError{Path: path, Reason: fmt.Sprintf("expected a map, got %T", raw)}}
	}

	var errs []error
	for key := range record {
		if !definitionKeys[key] {
			errs = append(errs, &DefinitionError{Path: path, Field: key, Reason: "unknown field"})
		}
	}
	sortErrors(errs)

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &def,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, append(errs, err)
	}
	if err := decoder.Decode(record); err != nil {
		if merr, ok := err.(*mapstructure.Error); ok {
			for _, msg := range merr.Errors {
				errs = append(errs, &DefinitionError{Path: path, Reason: msg})
			}
		} else {
			errs = append(errs, &DefinitionError{Path: path, Reason: err.Error()})
		}
		return nil, errs
	}

	errs = append(errs, checkActor(&def, path)...)
	if len(errs) > 0 {
		return nil, errs
	}
	return &def, nil
}

func checkActor(def *domain.Definition, path string) []error {
	if strings.TrimSpace(def.Actor) == "" {
		return []error{&DefinitionError{Path: path, Field: "actor", Reason: "missing actor kind"}}
	}
	return nil
}
