package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/abhisek/quizcrafter/internal/store"
)

// Recorder consumes answer and result events and writes them to the
// quiz history tables.
type Recorder struct {
	repo   store.QuizRepo
	router *message.Router
	logger *slog.Logger
}

// NewRecorder wires handlers for QuizAnswered and QuizFinished onto the
// bus subscriber. Call Run to start consuming.
func NewRecorder(bus *Bus, repo store.QuizRepo, logger *slog.Logger) (*Recorder, error) {
	if bus.Subscriber() == nil {
		return nil, fmt.Errorf("events driver has no subscriber")
	}
	if logger == nil {
		logger = slog.Default()
	}

	router, err := message.NewRouter(message.RouterConfig{}, bus.Logger())
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}

	r := &Recorder{repo: repo, router: router, logger: logger}
	router.AddNoPublisherHandler("record-answer", string(QuizAnswered), bus.Subscriber(), r.handleAnswered)
	router.AddNoPublisherHandler("record-result", string(QuizFinished), bus.Subscriber(), r.handleFinished)
	return r, nil
}

// Run consumes until ctx is done or Close is called.
func (r *Recorder) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed.
func (r *Recorder) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router.
func (r *Recorder) Close() error {
	return r.router.Close()
}

func (r *Recorder) handleAnswered(msg *message.Message) error {
	env, err := decode(msg)
	if err != nil {
		r.logger.Warn("dropping undecodable event", "error", err)
		return nil
	}
	var data AnsweredData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		r.logger.Warn("dropping malformed answer event", "event_id", env.ID, "error", err)
		return nil
	}

	return r.repo.AppendQuizAnswer(msg.Context(), store.QuizAnswerData{
		SessionID:     env.SessionID,
		QuestionIndex: data.Index,
		Question:      data.Question,
		Selected:      data.Selected,
		CorrectOption: data.CorrectOption,
		Correct:       data.Correct,
		AnsweredAt:    env.Timestamp,
	})
}

func (r *Recorder) handleFinished(msg *message.Message) error {
	env, err := decode(msg)
	if err != nil {
		r.logger.Warn("dropping undecodable event", "error", err)
		return nil
	}
	var data FinishedData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		r.logger.Warn("dropping malformed result event", "event_id", env.ID, "error", err)
		return nil
	}

	if err := r.repo.AppendQuizResult(msg.Context(), store.QuizResultData{
		SessionID:  env.SessionID,
		UserToken:  env.Token,
		Subject:    data.Subject,
		Topic:      data.Topic,
		Difficulty: data.Difficulty,
		Score:      data.Score,
		Total:      data.Total,
		StartedAt:  data.StartedAt,
		FinishedAt: data.FinishedAt,
	}); err != nil {
		return err
	}
	r.logger.Info("quiz result recorded", "session_id", env.SessionID, "score", data.Score, "total", data.Total)
	return nil
}

func decode(msg *message.Message) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		return envelope{}, fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return env, nil
}
