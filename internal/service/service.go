// Package service drives quiz sessions for every frontend.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizcrafter/internal/events"
	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/quiz"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/sessionstore"
)

// DefaultFeedbackDelay is how long answer feedback stays on screen.
const DefaultFeedbackDelay = 1500 * time.Millisecond

// Options configures a QuizService.
type Options struct {
	Generator     quizgen.Generator
	Sessions      sessionstore.Store
	Publisher     events.Publisher // optional
	Logger        *slog.Logger     // optional
	FeedbackDelay time.Duration
}

// QuizService generates quizzes and applies answers for sessions keyed
// by user token.
type QuizService struct {
	gen           quizgen.Generator
	sessions      sessionstore.Store
	publisher     events.Publisher
	logger        *slog.Logger
	feedbackDelay time.Duration

	locks tokenLocks
}

// New creates a QuizService.
func New(opts Options) *QuizService {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sessions == nil {
		opts.Sessions = sessionstore.NewMemory(0)
	}
	if opts.FeedbackDelay <= 0 {
		opts.FeedbackDelay = DefaultFeedbackDelay
	}
	return &QuizService{
		gen:           opts.Generator,
		sessions:      opts.Sessions,
		publisher:     opts.Publisher,
		logger:        opts.Logger,
		feedbackDelay: opts.FeedbackDelay,
	}
}

// FeedbackDelay is the pause presentation layers show feedback for
// before moving to the next question.
func (s *QuizService) FeedbackDelay() time.Duration {
	return s.feedbackDelay
}

// Generate asks for a new quiz and, on success, replaces the token's
// session with it. On failure the existing session is left as it was.
func (s *QuizService) Generate(ctx context.Context, token string, req quizgen.Request) (quiz.Session, error) {
	if err := req.Validate(); err != nil {
		return quiz.Session{}, err
	}
	req.Difficulty, _ = quizgen.ParseDifficulty(string(req.Difficulty))

	id := uuid.NewString()
	ctx = llm.WithSessionID(ctx, id)
	log := s.logger.With("token", token, "session_id", id)

	started := time.Now()
	questions, err := s.gen.Generate(ctx, req)
	if err != nil {
		log.WarnContext(ctx, "quiz generation failed",
			"subject", req.Subject, "topic", req.Topic, "difficulty", req.Difficulty, "error", err)
		return quiz.Session{}, err
	}

	sess, err := quiz.Start(quiz.Meta{
		ID:         id,
		Subject:    req.Subject,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		StartedAt:  time.Now(),
	}, questions)
	if err != nil {
		return quiz.Session{}, err
	}

	unlock := s.lock(token)
	defer unlock()
	if err := s.sessions.Save(ctx, token, sess); err != nil {
		return quiz.Session{}, fmt.Errorf("save session: %w", err)
	}

	log.InfoContext(ctx, "quiz started", "questions", len(questions), "took", time.Since(started).String())
	s.publish(ctx, events.New(events.QuizStarted, token, sess.ID, events.StartedData{
		Subject:    sess.Subject,
		Topic:      sess.Topic,
		Difficulty: string(sess.Difficulty),
		Total:      sess.Total(),
	}))
	return sess, nil
}

// Current returns the token's session, or the Idle session if none.
func (s *QuizService) Current(ctx context.Context, token string) (quiz.Session, error) {
	sess, ok, err := s.sessions.Load(ctx, token)
	if err != nil {
		return quiz.Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return quiz.Reset(), nil
	}
	return sess, nil
}

// Submit answers question index of the token's quiz sessionID with
// selected. Input and state errors leave the session unchanged.
func (s *QuizService) Submit(ctx context.Context, token, sessionID string, index int, selected string) (quiz.Session, quiz.Outcome, error) {
	unlock := s.lock(token)
	defer unlock()

	cur, err := s.Current(ctx, token)
	if err != nil {
		return quiz.Session{}, quiz.Outcome{}, err
	}

	next, out, err := quiz.AnswerAt(cur, sessionID, index, selected)
	if err != nil {
		return cur, quiz.Outcome{}, err
	}

	if err := s.sessions.Save(ctx, token, next); err != nil {
		return cur, quiz.Outcome{}, fmt.Errorf("save session: %w", err)
	}

	q := cur.Questions[out.Index]
	s.publish(ctx, events.New(events.QuizAnswered, token, next.ID, events.AnsweredData{
		Index:         out.Index,
		Question:      q.Text,
		Selected:      out.Selected,
		CorrectOption: out.CorrectOption,
		Correct:       out.Correct,
		Score:         next.Score,
	}))
	if out.Finished {
		s.logger.InfoContext(ctx, "quiz finished",
			"token", token, "session_id", next.ID, "score", next.Score, "total", next.Total())
		s.publish(ctx, events.New(events.QuizFinished, token, next.ID, events.FinishedData{
			Subject:    next.Subject,
			Topic:      next.Topic,
			Difficulty: string(next.Difficulty),
			Score:      next.Score,
			Total:      next.Total(),
			StartedAt:  next.StartedAt,
			FinishedAt: next.FinishedAt,
		}))
	}
	return next, out, nil
}

// Reset discards the token's session.
func (s *QuizService) Reset(ctx context.Context, token string) (quiz.Session, error) {
	unlock := s.lock(token)
	defer unlock()

	if err := s.sessions.Delete(ctx, token); err != nil {
		return quiz.Session{}, fmt.Errorf("delete session: %w", err)
	}
	return quiz.Reset(), nil
}

func (s *QuizService) publish(ctx context.Context, e events.Event) {
	if s.publisher == nil {
		return
	}
	// A lost event must not fail the user's action.
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "event not published", "event_type", e.Type, "error", err)
	}
}

// lock serializes operations on one token within the process.
func (s *QuizService) lock(token string) func() {
	return s.locks.lock(token)
}

// IsUserError reports whether err belongs to the recoverable taxonomy
// that is shown to the user rather than treated as a fault.
func IsUserError(err error) bool {
	var (
		ive *quizgen.InputValidationError
		ge  *quizgen.GenerationError
		pe  *quizgen.ParseError
	)
	return errors.As(err, &ive) || errors.As(err, &ge) || errors.As(err, &pe) ||
		errors.Is(err, quiz.ErrStaleSubmission) || errors.Is(err, quiz.ErrNotInProgress)
}
