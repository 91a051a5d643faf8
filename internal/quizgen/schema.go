package quizgen

import "github.com/abhisek/quizcrafter/internal/llm"

func itemDefinition() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 options prefixed 'a: ', 'b: ', 'c: ', 'd: '",
			},
			"correct_option": map[string]any{
				"type":        "string",
				"description": "The letter of the correct option: a, b, c or d",
			},
		},
		"required":             []any{"question", "options", "correct_option"},
		"additionalProperties": false,
	}
}

// QuizSchema is sent to vendors that support structured output. The
// array is wrapped in an object because strict modes reject a top-level
// array; Parse still recovers it by bracket extraction.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A list of multiple-choice quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": itemDefinition(),
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// ItemSchema checks the shape of a single recovered item. Unknown keys
// are tolerated here since models often add an explanation.
var ItemSchema = &llm.Schema{
	Name:        "quiz-item",
	Description: "One multiple-choice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":       map[string]any{"type": "string", "minLength": 1},
			"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 4, "maxItems": 4},
			"correct_option": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []any{"question", "options", "correct_option"},
	},
}
