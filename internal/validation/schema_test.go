package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePayloadReportsIssues(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "number", "minimum": 0},
			"label": map[string]any{"type": "string"},
		},
		"required": []any{"label"},
	}

	err := ValidatePayload(schema, map[string]any{"count": -1})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) < 2 {
		t.Fatalf("expected issues for both count and label, got %+v", issues)
	}
	if !strings.Contains(err.Error(), "#") {
		t.Fatalf("expected locations in message, got %q", err.Error())
	}
}

func TestValidatorAcceptsTypedValues(t *testing.T) {
	validator, err := Compile(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"count": map[string]any{"type": "integer"},
		},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := validator.Validate(map[string]any{"count": 3}); err != nil {
		t.Fatalf("expected int to validate as integer, got %v", err)
	}
}

func TestCompileRejectsInvalidSchema(t *testing.T) {
	_, err := Compile(map[string]any{"type": 42})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestNilSchemaAcceptsAnything(t *testing.T) {
	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to accept payload, got %v", err)
	}
}
