package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
)

// Text shared by every frontend.
const (
	AppTitle       = "QuizCrafter AI"
	MsgCorrect     = "✅ Correct!"
	MsgFinished    = "Quiz finished!"
	MsgRestart     = "Restart Quiz"
	MsgStale       = "That question was already answered."
	MsgNoQuiz      = "No quiz in progress. Generate a quiz to start."
	MsgTimeout     = "The question generator took too long to respond. Please try again."
	MsgUnavailable = "Something went wrong. Please try again."
)

// Feedback renders the result of one answer.
func Feedback(out quiz.Outcome) string {
	if out.Correct {
		return MsgCorrect
	}
	return "❌ Incorrect. The correct answer is: " + strings.ToUpper(out.CorrectOption)
}

// ScoreLine renders "Your score: s / n".
func ScoreLine(s quiz.Session) string {
	return fmt.Sprintf("Your score: %d / %d", s.Score, s.Total())
}

// Progress renders "Question i of n" for the current question.
func Progress(s quiz.Session) string {
	return fmt.Sprintf("Question %d of %d", s.CurrentIndex+1, s.Total())
}

// GeneratingLine is shown while a quiz is being generated.
func GeneratingLine(req quizgen.Request) string {
	return fmt.Sprintf("Generating quiz for %s on %s at %s difficulty...", req.Subject, req.Topic, req.Difficulty)
}

// UserMessage maps an error to the text shown to the user.
func UserMessage(err error) string {
	var (
		ive *quizgen.InputValidationError
		ge  *quizgen.GenerationError
		pe  *quizgen.ParseError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ive):
		return ive.Message
	case errors.As(err, &ge):
		if ge.Timeout() {
			return MsgTimeout
		}
		return fmt.Sprintf("Error generating questions: %v", ge.Err)
	case errors.As(err, &pe):
		return fmt.Sprintf("Failed to parse the generated quiz (%s). Please try again.", pe.Reason)
	case errors.Is(err, quiz.ErrStaleSubmission):
		return MsgStale
	case errors.Is(err, quiz.ErrNotInProgress):
		return MsgNoQuiz
	}
	return MsgUnavailable
}
