package quizgen

import (
	"errors"
	"fmt"

	"github.com/abhisek/quizcrafter/internal/llm"
)

// User-facing messages.
const (
	MsgMissingSubjectTopic = "Please enter both subject and topic."
	MsgNoSelection         = "Please select an answer before submitting."
)

// InputValidationError reports missing or invalid user input. It never
// changes any state.
type InputValidationError struct {
	Field   string
	Message string
}

func (e *InputValidationError) Error() string {
	return e.Message
}

// GenerationError reports a failed call to the LLM: network, API or
// timeout.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error generating questions: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *GenerationError) Timeout() bool {
	var te *llm.ErrTimeout
	return errors.As(e.Err, &te)
}

// ParseError reports a model reply that held no usable question list.
type ParseError struct {
	Stage  ParseStage
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse questions: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse questions: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
