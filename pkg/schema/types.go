package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
)

// Type defines the contract for option validation.
// Implementations check a raw value and return its normalized form.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type and returns the
	// normalized value (e.g. whole float64 from JSON becomes int).
	Validate(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %s", TypeOf(value))
	}
	return s, nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint:
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("expected int, got out of range uint64")
		}
		return int(v), nil
	case float32:
		return wholeFloat(float64(v))
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		return wholeFloat(v)
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("expected int, got %s", v.String())
		}
		return int(i), nil
	default:
		return nil, fmt.Errorf("expected int, got %s", TypeOf(value))
	}
}

func wholeFloat(v float64) (any, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("expected int, got float (not a whole number)")
	}
	return int(v), nil
}

// FloatType validates floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(v).Convert(reflect.TypeOf(float64(0))).Float(), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("expected float, got %s", v.String())
		}
		return f, nil
	default:
		return nil, fmt.Errorf("expected float, got %s", TypeOf(value))
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) (any, error) {
	b, ok := value.(bool)
	if !ok {
		return nil, fmt.Errorf("expected bool, got %s", TypeOf(value))
	}
	return b, nil
}

// DurationType accepts a number of seconds or a Go duration string ("1m30s").
type DurationType struct{}

func (t *DurationType) Name() string { return "duration" }

func (t *DurationType) Validate(value any) (any, error) {
	var d time.Duration
	switch v := value.(type) {
	case time.Duration:
		d = v
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("expected duration, got unparsable string %q", v)
		}
		d = parsed
	default:
		secs, err := Float().Validate(value)
		if err != nil {
			return nil, fmt.Errorf("expected duration, got %s", TypeOf(value))
		}
		d = time.Duration(secs.(float64) * float64(time.Second))
	}
	if d < 0 {
		return nil, fmt.Errorf("expected duration, got negative value")
	}
	return d, nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected list, got %s", TypeOf(value))
	}

	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := t.elemType.Validate(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, elem)
	}
	return out, nil
}

// MapType validates string-keyed mappings of a specific value type.
type MapType struct {
	valueType Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{%s}", t.valueType.Name())
}

func (t *MapType) Validate(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("expected map, got %s", TypeOf(value))
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		v, err := t.valueType.Validate(iter.Value().Interface())
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out[key] = v
	}
	return out, nil
}

// OneOfType accepts a value matching any of its alternatives, tried in order.
type OneOfType struct {
	types []Type
}

func (t *OneOfType) Name() string {
	names := make([]string, len(t.types))
	for i, typ := range t.types {
		names[i] = typ.Name()
	}
	return strings.Join(names, "|")
}

func (t *OneOfType) Validate(value any) (any, error) {
	for _, typ := range t.types {
		if v, err := typ.Validate(value); err == nil {
			return v, nil
		}
	}
	return nil, fmt.Errorf("expected %s, got %s", t.Name(), TypeOf(value))
}

// ActorsType marks an option holding an ordered list of nested actor
// definitions. It only checks the list shape; each element is compiled by
// the tree builder.
type ActorsType struct{}

func (t *ActorsType) Name() string { return "[actor]" }

func (t *ActorsType) Validate(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected list of actors, got %s", TypeOf(value))
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) (any, error) {
	if err := t.validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// ErrCustomValidation builds an error for use inside Custom validators.
func ErrCustomValidation(msg string) error {
	return fmt.Errorf("%s", msg)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Duration creates a duration type validator.
func Duration() Type { return &DurationType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a validator for string-keyed maps with values of the given type.
func Map(valueType Type) Type {
	return &MapType{valueType: valueType}
}

// OneOf creates a union type validator.
func OneOf(types ...Type) Type {
	return &OneOfType{types: types}
}

// Actors creates the nested actor list type.
func Actors() Type { return &ActorsType{} }

// IsActors reports whether t holds nested actor definitions.
func IsActors(t Type) bool {
	_, ok := t.(*ActorsType)
	return ok
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// TypeOf names the configuration-level type of a raw value, as authors see it.
func TypeOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "int"
	case float32, float64, json.Number:
		return "float"
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "map"
	}
	return fmt.Sprintf("%T", value)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
