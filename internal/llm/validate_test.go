package llm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func optionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A question with three lettered options",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":           map[string]any{"type": "integer", "minimum": 1},
				"questionText": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"minItems": 3,
					"maxItems": 3,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"key":  map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
							"text": map[string]any{"type": "string"},
						},
						"required": []any{"key", "text"},
					},
				},
				"correctAnswer": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"id", "questionText", "options", "correctAnswer"},
		},
	}
}

const validQuestion = `{
	"id": 1,
	"questionText": "Manakah yang termasuk produsen?",
	"options": [{"key":"A","text":"Rumput"},{"key":"B","text":"Kelinci"},{"key":"C","text":"Elang"}],
	"correctAnswer": "A"
}`

func requireInvalid(t *testing.T, err error) *ErrInvalidResponse {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
	return invErr
}

func TestValidateResponse_Valid(t *testing.T) {
	if err := validateResponse(optionSchema(), json.RawMessage(validQuestion)); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing correct answer", `{"id":1,"questionText":"q","options":[{"key":"A","text":"a"},{"key":"B","text":"b"},{"key":"C","text":"c"}]}`},
		{"id as string", strings.Replace(validQuestion, `"id": 1`, `"id": "1"`, 1)},
		{"label outside level", strings.Replace(validQuestion, `"correctAnswer": "A"`, `"correctAnswer": "D"`, 1)},
		{"too few options", `{"id":1,"questionText":"q","options":[{"key":"A","text":"a"}],"correctAnswer":"A"}`},
		{"option without text", `{"id":1,"questionText":"q","options":[{"key":"A"},{"key":"B","text":"b"},{"key":"C","text":"c"}],"correctAnswer":"A"}`},
		{"malformed JSON", `{not json}`},
		{"empty body", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invErr := requireInvalid(t, validateResponse(optionSchema(), json.RawMessage(tt.raw)))
			if string(invErr.Content) != tt.raw {
				t.Errorf("content not preserved: %q", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_ErrorNamesSchema(t *testing.T) {
	raw := strings.Replace(validQuestion, `"correctAnswer": "A"`, `"correctAnswer": "E"`, 1)
	invErr := requireInvalid(t, validateResponse(optionSchema(), json.RawMessage(raw)))
	if !strings.Contains(invErr.Error(), `"test-question"`) {
		t.Errorf("error should name the schema: %v", invErr)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_CompiledOncePerName(t *testing.T) {
	s := optionSchema()
	s.Name = "test-question-cache"
	if err := validateResponse(s, json.RawMessage(validQuestion)); err != nil {
		t.Fatal(err)
	}
	if _, ok := schemaCache.Load(s.Name); !ok {
		t.Fatal("expected compiled schema in cache")
	}
}
