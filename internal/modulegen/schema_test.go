package modulegen

import (
	"reflect"
	"testing"

	"github.com/abhisek/edugenius/internal/content"
)

func optionsSchema(t *testing.T, level content.EducationLevel) map[string]any {
	t.Helper()
	def := SchemaFor(level).Definition
	questions := def["properties"].(map[string]any)["questions"].(map[string]any)
	item := questions["items"].(map[string]any)
	return item["properties"].(map[string]any)["options"].(map[string]any)
}

func TestSchemaFor_OptionBounds(t *testing.T) {
	for _, level := range content.AllLevels() {
		t.Run(string(level), func(t *testing.T) {
			opts := optionsSchema(t, level)
			n := level.OptionCount()
			if opts["minItems"] != n || opts["maxItems"] != n {
				t.Fatalf("expected %d options, got min=%v max=%v", n, opts["minItems"], opts["maxItems"])
			}
		})
	}
}

func TestSchemaFor_SMAKeys(t *testing.T) {
	opts := optionsSchema(t, content.LevelSMA)
	key := opts["items"].(map[string]any)["properties"].(map[string]any)["key"].(map[string]any)
	want := []any{"A", "B", "C", "D", "E"}
	if !reflect.DeepEqual(key["enum"], want) {
		t.Fatalf("key enum = %v, want %v", key["enum"], want)
	}
}

func TestSchemaFor_RequiredFields(t *testing.T) {
	def := SchemaFor(content.LevelSMP).Definition
	if !reflect.DeepEqual(def["required"], []any{"questions"}) {
		t.Fatalf("top-level required = %v", def["required"])
	}
	item := def["properties"].(map[string]any)["questions"].(map[string]any)["items"].(map[string]any)
	want := []any{"id", "stimulus", "questionText", "options", "correctAnswer", "explanation"}
	if !reflect.DeepEqual(item["required"], want) {
		t.Fatalf("question required = %v", item["required"])
	}
}

func TestSchemaFor_DistinctNames(t *testing.T) {
	seen := map[string]bool{}
	for _, level := range content.AllLevels() {
		name := SchemaFor(level).Name
		if seen[name] {
			t.Fatalf("duplicate schema name %q", name)
		}
		seen[name] = true
	}
	if SchemaFor(content.LevelSDLow).Name != "hots-module-sd-low" {
		t.Errorf("unexpected name %q", SchemaFor(content.LevelSDLow).Name)
	}
}
