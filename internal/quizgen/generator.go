package quizgen

import "context"

// Generator produces quiz questions.
type Generator interface {
	// Generate returns a non-empty question list or an error: an
	// *InputValidationError, a *GenerationError or a *ParseError.
	// On error the list is always nil.
	Generate(ctx context.Context, req Request) ([]Question, error)
}
