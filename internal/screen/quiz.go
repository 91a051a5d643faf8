package screen

import (
	"context"
	"time"

	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
)

// QuizService is the quiz backend the terminal screens drive.
// *service.QuizService satisfies it.
type QuizService interface {
	Generate(ctx context.Context, token string, req quizgen.Request) (quiz.Session, error)
	Submit(ctx context.Context, token, sessionID string, index int, selected string) (quiz.Session, quiz.Outcome, error)
	Reset(ctx context.Context, token string) (quiz.Session, error)
	FeedbackDelay() time.Duration
}

// ScoreMsg is broadcast whenever the running score changes so the
// header can show it.
type ScoreMsg struct {
	Score int
	Total int
}
