package modulegen

import (
	"strings"

	"github.com/abhisek/edugenius/internal/content"
	"github.com/abhisek/edugenius/internal/llm"
)

// schemas holds one response schema per level. The option count and
// labels differ by level, so each gets its own name in the validator
// cache.
var schemas = func() map[content.EducationLevel]*llm.Schema {
	m := make(map[content.EducationLevel]*llm.Schema)
	for _, l := range content.AllLevels() {
		m[l] = buildSchema(l)
	}
	return m
}()

// SchemaFor returns the response schema for the given level.
func SchemaFor(level content.EducationLevel) *llm.Schema {
	if s, ok := schemas[level]; ok {
		return s
	}
	return buildSchema(level)
}

func buildSchema(level content.EducationLevel) *llm.Schema {
	labels := level.OptionLabels()
	keys := make([]any, len(labels))
	for i, l := range labels {
		keys[i] = l
	}
	n := len(labels)

	return &llm.Schema{
		Name:        "hots-module-" + strings.ToLower(strings.ReplaceAll(string(level), "_", "-")),
		Description: "A study module summary and HOTS multiple-choice questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"description": "A concise study module or summary of the material. Use Markdown formatting. If not requested, leave empty.",
				},
				"questions": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id": map[string]any{
								"type":        "integer",
								"description": "Sequential question number",
							},
							"stimulus": map[string]any{
								"type":        "string",
								"description": "The case, data, scenario or excerpt the student must analyze",
							},
							"questionText": map[string]any{
								"type":        "string",
								"description": "The question stem asked about the stimulus",
							},
							"options": map[string]any{
								"type":     "array",
								"minItems": n,
								"maxItems": n,
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"key": map[string]any{
											"type":        "string",
											"enum":        keys,
											"description": "Option label",
										},
										"text": map[string]any{
											"type":        "string",
											"description": "Option content",
										},
									},
									"required":             []any{"key", "text"},
									"additionalProperties": false,
								},
							},
							"correctAnswer": map[string]any{
								"type":        "string",
								"enum":        keys,
								"description": "The key of the correct option",
							},
							"explanation": map[string]any{
								"type":        "string",
								"description": "Why the answer is correct and the distractors are not, including the cognitive level (C4/C5/C6)",
							},
						},
						"required":             []any{"id", "stimulus", "questionText", "options", "correctAnswer", "explanation"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []any{"questions"},
			"additionalProperties": false,
		},
	}
}
