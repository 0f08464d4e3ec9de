package mcpclient

import (
	"encoding/json"
	"strings"
	"testing"
)

func locationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "string",
				"description": "City or place name to search for",
			},
			"count": map[string]any{
				"type":        "integer",
				"description": "Maximum number of results (1-10)",
			},
		},
		"required": []any{"name"},
	}
}

func TestValidateArgumentsAcceptsValidPayload(t *testing.T) {
	args := map[string]any{"name": "Oslo", "count": 3}
	if err := validateArguments(locationSchema(), args); err != nil {
		t.Fatalf("expected valid arguments, got: %v", err)
	}
}

func TestValidateArgumentsRejectsMissingRequired(t *testing.T) {
	args := map[string]any{"count": 3}
	err := validateArguments(locationSchema(), args)
	if err == nil {
		t.Fatalf("expected rejection for missing required property")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("expected error to mention the missing property, got: %v", err)
	}
}

func TestValidateArgumentsRejectsWrongType(t *testing.T) {
	args := map[string]any{"name": "Oslo", "count": "three"}
	if err := validateArguments(locationSchema(), args); err == nil {
		t.Fatalf("expected rejection for wrong type")
	}
}

func TestValidateArgumentsNilSchemaPasses(t *testing.T) {
	if err := validateArguments(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("nil schema should validate everything, got: %v", err)
	}
}

func TestNormalizeID(t *testing.T) {
	cases := map[string]string{
		`7`:     "7",
		`"7"`:   "7",
		` 12 `:  "12",
		`"abc"`: "abc",
		``:      "",
	}
	for raw, want := range cases {
		if got := normalizeID(json.RawMessage(raw)); got != want {
			t.Fatalf("normalizeID(%q) = %q, want %q", raw, got, want)
		}
	}
}
