package llm

import (
	"testing"

	"google.golang.org/genai"
)

func quizSchemaDef() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "description": "question text"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correct_option": map[string]any{"type": "string", "enum": []any{"a", "b", "c", "d"}},
				"points":         map[string]any{"type": "integer"},
			},
			"required": []any{"question", "options", "correct_option"},
		},
	}
}

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(quizSchemaDef())

	if schema.Type != genai.TypeArray {
		t.Fatalf("type = %s, want ARRAY", schema.Type)
	}
	item := schema.Items
	if item == nil || item.Type != genai.TypeObject {
		t.Fatalf("items = %+v, want OBJECT", item)
	}
	if len(item.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(item.Properties))
	}
	if q := item.Properties["question"]; q.Type != genai.TypeString || q.Description != "question text" {
		t.Errorf("question = %+v", q)
	}
	if item.Properties["points"].Type != genai.TypeInteger {
		t.Errorf("points type = %s", item.Properties["points"].Type)
	}
	if got := item.Properties["correct_option"].Enum; len(got) != 4 {
		t.Errorf("enum = %v", got)
	}
	if item.Properties["options"].Items.Type != genai.TypeString {
		t.Errorf("option items type = %s", item.Properties["options"].Items.Type)
	}
	if len(item.Required) != 3 {
		t.Errorf("required = %v", item.Required)
	}
}

func TestGeminiConfig(t *testing.T) {
	cfg := geminiConfig(Request{
		System:    "You generate quizzes.",
		MaxTokens: 512,
		Schema:    &Schema{Name: "quiz", Definition: quizSchemaDef()},
	})

	if cfg.Temperature == nil || *cfg.Temperature != 0 {
		t.Errorf("temperature = %v, want explicit 0", cfg.Temperature)
	}
	if cfg.MaxOutputTokens != 512 {
		t.Errorf("max tokens = %d", cfg.MaxOutputTokens)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "You generate quizzes." {
		t.Errorf("system instruction = %+v", cfg.SystemInstruction)
	}
	if cfg.ResponseMIMEType != "application/json" || cfg.ResponseSchema == nil {
		t.Error("structured output not configured")
	}

	plain := geminiConfig(Request{})
	if plain.ResponseSchema != nil || plain.SystemInstruction != nil {
		t.Error("plain request should not set schema or system instruction")
	}
}
