package quiz

import (
	"errors"

	"github.com/abhisek/quizcrafter/internal/quizgen"
)

var (
	// ErrNoQuestions is returned by Start for an empty question list.
	ErrNoQuestions = errors.New("quiz: no questions to start with")

	// ErrNotInProgress is returned when answering an idle or finished quiz.
	ErrNotInProgress = errors.New("quiz: no question is awaiting an answer")

	// ErrStaleSubmission is returned when an answer targets a question
	// other than the current one, e.g. a double-submitted form.
	ErrStaleSubmission = errors.New("quiz: answer is for a question that is no longer current")

	// ErrNoSelection is returned when the user submits without choosing.
	ErrNoSelection error = &quizgen.InputValidationError{Field: "selection", Message: quizgen.MsgNoSelection}
)
