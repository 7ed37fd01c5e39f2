package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func sleepSchema() Options {
	return Options{
		"sleep": Required(Duration(), "Time to wait"),
		"note":  Optional(String(), "zzz", "Message to log"),
		"loud":  Optional(Bool(), nil, "Log at info level"),
	}
}

func TestValidate_Success(t *testing.T) {
	values, errs := Validate("", sleepSchema(), map[string]any{
		"sleep": 60,
		"loud":  true,
	})
	if len(errs) != 0 {
		t.Fatalf("Validate() errors = %v, want none", errs)
	}

	if values.Duration("sleep") != time.Minute {
		t.Errorf("sleep = %v, want 1m", values.Duration("sleep"))
	}
	if values.String("note") != "zzz" {
		t.Errorf("note = %q, want default %q", values.String("note"), "zzz")
	}
	if !values.Bool("loud") {
		t.Error("loud = false, want true")
	}
}

func TestValidate_OptionalWithoutDefault(t *testing.T) {
	values, errs := Validate("", sleepSchema(), map[string]any{"sleep": 1})
	if len(errs) != 0 {
		t.Fatalf("Validate() errors = %v, want none", errs)
	}
	if _, ok := values.Get("loud"); ok {
		t.Error("loud should be absent when neither given nor defaulted")
	}
}

func TestValidate_DefaultsAreNormalized(t *testing.T) {
	options := Options{
		"grace":   Optional(Duration(), 5, "Seconds before giving up"),
		"timeout": Optional(Duration(), 2*time.Minute, "Overall limit"),
		"ratio":   Optional(Float(), 1, "Share of instances"),
	}

	defaulted, errs := Validate("", options, map[string]any{})
	if len(errs) != 0 {
		t.Fatalf("Validate() errors = %v, want none", errs)
	}
	explicit, errs := Validate("", options, map[string]any{"grace": 5, "timeout": "2m", "ratio": 1})
	if len(errs) != 0 {
		t.Fatalf("Validate() errors = %v, want none", errs)
	}

	for _, name := range []string{"grace", "timeout", "ratio"} {
		if defaulted[name] != explicit[name] {
			t.Errorf("%s: default %#v differs from explicit %#v", name, defaulted[name], explicit[name])
		}
	}
	if got := defaulted.Duration("grace"); got != 5*time.Second {
		t.Errorf("grace = %v, want 5s", got)
	}
	if got := defaulted.Float("ratio"); got != 1.0 {
		t.Errorf("ratio = %v, want 1", got)
	}
}

func TestOption_NormalizedDefault(t *testing.T) {
	if def, err := Optional(Int(), nil, "").NormalizedDefault(); err != nil || def != nil {
		t.Errorf("NormalizedDefault() = %v, %v; want nil, nil", def, err)
	}
	if _, err := Optional(Int(), "ten", "").NormalizedDefault(); err == nil {
		t.Error("NormalizedDefault() should reject a default of the wrong type")
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	_, errs := Validate("acts[1]", sleepSchema(), map[string]any{})
	if len(errs) != 1 {
		t.Fatalf("Validate() = %d errors, want 1: %v", len(errs), errs)
	}

	var missing *MissingRequiredOptionError
	if !errors.As(errs[0], &missing) {
		t.Fatalf("error should be *MissingRequiredOptionError, got %T", errs[0])
	}
	if missing.Option != "sleep" {
		t.Errorf("Option = %q, want sleep", missing.Option)
	}
	if missing.Location() != "acts[1].options.sleep" {
		t.Errorf("Location() = %q, want acts[1].options.sleep", missing.Location())
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	_, errs := Validate("", sleepSchema(), map[string]any{
		"sleep": true,
	})
	if len(errs) != 1 {
		t.Fatalf("Validate() = %d errors, want 1: %v", len(errs), errs)
	}

	var invalid *InvalidOptionTypeError
	if !errors.As(errs[0], &invalid) {
		t.Fatalf("error should be *InvalidOptionTypeError, got %T", errs[0])
	}
	if invalid.Expected != "duration" || invalid.Actual != "bool" {
		t.Errorf("Expected/Actual = %s/%s, want duration/bool", invalid.Expected, invalid.Actual)
	}
	if !strings.Contains(invalid.Error(), "options.sleep") {
		t.Errorf("Error() = %q, should name the option path", invalid.Error())
	}
}

func TestValidate_UnknownOption(t *testing.T) {
	_, errs := Validate("", sleepSchema(), map[string]any{
		"sleep":  1,
		"sleeep": 2,
	})
	if len(errs) != 1 {
		t.Fatalf("Validate() = %d errors, want 1: %v", len(errs), errs)
	}

	var unknown *UnknownOptionError
	if !errors.As(errs[0], &unknown) {
		t.Fatalf("error should be *UnknownOptionError, got %T", errs[0])
	}
	if unknown.Option != "sleeep" {
		t.Errorf("Option = %q, want sleeep", unknown.Option)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	_, errs := Validate("", sleepSchema(), map[string]any{
		// missing sleep
		"note":  42,
		"extra": "x",
	})
	if len(errs) != 3 {
		t.Errorf("Validate() = %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidate_EmptySchema(t *testing.T) {
	values, errs := Validate("", Options{}, map[string]any{})
	if len(errs) != 0 || len(values) != 0 {
		t.Errorf("Validate() = %v, %v; want empty", values, errs)
	}

	_, errs = Validate("", nil, map[string]any{"x": 1})
	if len(errs) != 1 {
		t.Errorf("Validate() with nil schema = %d errors, want 1 unknown option", len(errs))
	}
}

func TestCheck_Aggregates(t *testing.T) {
	_, err := Check("", sleepSchema(), map[string]any{"note": 1})
	if err == nil {
		t.Fatal("Check() should fail")
	}

	if got := len(ValidationErrors(err)); got != 2 {
		t.Errorf("ValidationErrors() = %d, want 2", got)
	}

	var missing *MissingRequiredOptionError
	if !errors.As(err, &missing) {
		t.Error("errors.As should find the missing option through the aggregate")
	}
	if !strings.Contains(err.Error(), "2 validation errors") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestOptionsMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Options{
		"sleep": Optional(Duration(), 5*time.Second, "Time to wait"),
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"sleep":{"type":"duration","required":false,"default":"5s","description":"Time to wait"}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
