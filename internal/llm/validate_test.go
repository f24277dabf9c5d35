package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func explainSchema() *Schema {
	return &Schema{
		Name:        "explain-validate-test",
		Description: "bilingual explanation",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"english": map[string]any{"type": "string", "minLength": 1},
				"bengali": map[string]any{"type": "string", "minLength": 1},
				"level":   map[string]any{"type": "string", "enum": []any{"beginner", "intermediate", "advanced"}},
			},
			"required": []any{"english", "bengali"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"english":"Nouns are capitalized.","bengali":"বিশেষ্য বড় হাতের।"}`, false},
		{"valid with optional enum", `{"english":"a","bengali":"b","level":"advanced"}`, false},
		{"missing required", `{"english":"only english"}`, true},
		{"wrong type", `{"english":1,"bengali":"b"}`, true},
		{"empty string violates minLength", `{"english":"","bengali":"b"}`, true},
		{"enum violation", `{"english":"a","bengali":"b","level":"expert"}`, true},
		{"malformed JSON", `{english:}`, true},
		{"empty body", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(explainSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("expected ErrInvalidResponse, got: %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchemaAcceptsText(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`Ich lerne Deutsch.`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArray(t *testing.T) {
	schema := grammarSchema()

	valid := json.RawMessage(`{"errors":[{"rule":"CASE","message":"dative after mit"}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	invalid := json.RawMessage(`{"errors":[{"rule":"CASE"}]}`)
	if err := validateResponse(schema, invalid); err == nil {
		t.Fatal("expected error for missing message in array item")
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := explainSchema()
	a, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a != b {
		t.Fatal("expected cached compiled schema")
	}
}
