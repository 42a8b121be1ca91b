package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/prodquery/errors"
)

type record struct {
	ID           int     `yaml:"id" validate:"gt=0"`
	Name         string  `yaml:"name" validate:"required"`
	StandardCost float64 `json:"standard_cost" validate:"gte=0"`
	Color        string  `validate:"omitempty,oneof=Red White"`
}

func TestStructValidateValid(t *testing.T) {
	if err := Validate(record{ID: 1, Name: "Sock", Color: "White"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(record{ID: 0, Name: "", StandardCost: -1, Color: "Blue"})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{
		"id: must be greater than 0",
		"name: is required",
		"standard_cost: must be at least 0",
		"color: must be one of: Red White",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Errorf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestStructValidateNonStruct(t *testing.T) {
	if err := Validate(42); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for non-struct, got %v", err)
	}
}

func TestValidatorCollects(t *testing.T) {
	v := New().
		Check(true, "ok", "never").
		NotNegative("min-cost", -3).
		OneOf("fields", "prices", []string{"all", "names"}).
		OneOf("empty", "", []string{"x"})

	if !v.HasErrors() || len(v.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %v", v.Errors())
	}
	err := v.Validate()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "min-cost: must not be negative") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidatorEmpty(t *testing.T) {
	if err := New().Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{"StandardCost": "standard_cost", "ID": "i_d", "name": "name"}
	for in, want := range cases {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
