package schema

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{123, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		_, err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	tests := []struct {
		value   any
		want    int
		wantErr bool
	}{
		{42, 42, false},
		{int64(42), 42, false},
		{uint8(7), 7, false},
		{60.0, 60, false}, // JSON numbers
		{json.Number("12"), 12, false},
		{3.14, 0, true},
		{"3", 0, true},
		{true, 0, true},
		{nil, 0, true},
	}

	for _, tt := range tests {
		got, err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Validate(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFloatType(t *testing.T) {
	typ := Float()

	tests := []struct {
		value   any
		want    float64
		wantErr bool
	}{
		{3.5, 3.5, false},
		{float32(1.5), 1.5, false},
		{2, 2.0, false},
		{"3.14", 0, true},
		{true, 0, true},
		{nil, 0, true},
	}

	for _, tt := range tests {
		got, err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Validate(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{true, false},
		{false, false},
		{1, true},
		{"true", true},
		{nil, true},
	}

	for _, tt := range tests {
		_, err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestDurationType(t *testing.T) {
	typ := Duration()

	tests := []struct {
		value   any
		want    time.Duration
		wantErr bool
	}{
		{60, time.Minute, false},
		{0.5, 500 * time.Millisecond, false},
		{"1m30s", 90 * time.Second, false},
		{"soon", 0, true},
		{-1, 0, true},
		{true, 0, true},
	}

	for _, tt := range tests {
		got, err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Validate(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSliceType(t *testing.T) {
	stringSlice := Slice(String())
	intSlice := Slice(Int())
	stringStringSlice := Slice(Slice(String()))

	if stringStringSlice.Name() != "[[string]]" {
		t.Errorf("Name() = %q, want %q", stringStringSlice.Name(), "[[string]]")
	}

	tests := []struct {
		typ     Type
		value   any
		wantErr bool
		desc    string
	}{
		{stringSlice, []string{"a", "b"}, false, "string slice"},
		{stringSlice, []string{}, false, "empty string slice"},
		{stringSlice, []interface{}{"a", "b"}, false, "any slice with strings"},
		{stringSlice, []int{1, 2}, true, "slice of ints when expecting strings"},
		{stringSlice, "not a slice", true, "string instead of slice"},
		{intSlice, []interface{}{1.0, 2, 3}, false, "any slice with numbers"},
		{intSlice, []interface{}{1, "2", 3}, true, "mixed slice"},
		{stringStringSlice, [][]string{{"a"}, {"b", "c"}}, false, "nested string slice"},
		{stringSlice, nil, true, "nil"},
	}

	for _, tt := range tests {
		_, err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate(%v) error = %v, wantErr %v", tt.desc, tt.value, err, tt.wantErr)
		}
	}
}

func TestMapType(t *testing.T) {
	typ := Map(String())

	got, err := typ.Validate(map[string]any{"env": "prod"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if m := got.(map[string]any); m["env"] != "prod" {
		t.Errorf("Validate() = %v, want env=prod", got)
	}

	if _, err := typ.Validate(map[string]any{"env": 1}); err == nil {
		t.Error("Validate() should reject non-string values")
	}
	if _, err := typ.Validate([]string{"a"}); err == nil {
		t.Error("Validate() should reject lists")
	}
}

func TestOneOfType(t *testing.T) {
	typ := OneOf(Int(), String())

	if typ.Name() != "int|string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "int|string")
	}

	for _, v := range []any{4, "80%"} {
		if _, err := typ.Validate(v); err != nil {
			t.Errorf("Validate(%v) error = %v", v, err)
		}
	}
	if _, err := typ.Validate(true); err == nil {
		t.Error("Validate(true) should fail")
	}
}

func TestActorsType(t *testing.T) {
	typ := Actors()

	if !IsActors(typ) {
		t.Error("IsActors(Actors()) = false")
	}
	if IsActors(Slice(String())) {
		t.Error("IsActors(Slice) = true")
	}

	got, err := typ.Validate([]map[string]any{{"actor": "misc.Sleep"}})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(got.([]any)) != 1 {
		t.Errorf("Validate() = %v, want one element", got)
	}

	if _, err := typ.Validate(map[string]any{}); err == nil {
		t.Error("Validate(map) should fail")
	}
}

func TestCustomType(t *testing.T) {
	evenNumber := Custom("even", func(v any) error {
		i, ok := v.(int)
		if !ok {
			return ErrCustomValidation("not an int")
		}
		if i%2 != 0 {
			return ErrCustomValidation("not even")
		}
		return nil
	})

	if evenNumber.Name() != "even" {
		t.Errorf("Name() = %q, want %q", evenNumber.Name(), "even")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{2, false},
		{4, false},
		{1, true},
		{"2", true},
	}

	for _, tt := range tests {
		_, err := evenNumber.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestTypeOf(t *testing.T) {
	tests := map[any]string{
		"x":   "string",
		1:     "int",
		1.5:   "float",
		false: "bool",
	}
	for v, want := range tests {
		if got := TypeOf(v); got != want {
			t.Errorf("TypeOf(%v) = %q, want %q", v, got, want)
		}
	}
	if got := TypeOf(nil); got != "null" {
		t.Errorf("TypeOf(nil) = %q, want null", got)
	}
	if got := TypeOf([]any{}); got != "list" {
		t.Errorf("TypeOf(list) = %q, want list", got)
	}
	if got := TypeOf(map[string]any{}); got != "map" {
		t.Errorf("TypeOf(map) = %q, want map", got)
	}
}
