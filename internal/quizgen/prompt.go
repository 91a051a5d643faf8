package quizgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write multiple-choice quizzes.

Rules:
- Every question must be different from the others.
- Each question has exactly four options, prefixed "a: ", "b: ", "c: " and "d: ".
- Exactly one option is correct. "correct_option" holds only its letter.
- Reply with the JSON array only. No prose, no markdown fences.`

// buildUserMessage renders the quiz request for the model.
func buildUserMessage(req Request, cfg Config) string {
	count := cfg.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d unique multiple-choice questions on the topic '%s' in the subject '%s' at a '%s' difficulty level.\n",
		count, strings.TrimSpace(req.Topic), strings.TrimSpace(req.Subject), req.Difficulty)
	b.WriteString("Ensure that each question is different from previous ones. ")
	b.WriteString("Provide four options for each question, clearly mark the correct option, and return the output in JSON format like this:\n")
	b.WriteString(`[{"question": "...", "options": ["a: Option 1", "b: Option 2", "c: Option 3", "d: Option 4"], "correct_option": "a"}]`)
	if cfg.StructuredOutput {
		b.WriteString("\nWrap the array in an object under the key \"questions\".")
	}
	return b.String()
}
