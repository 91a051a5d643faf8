// Package events publishes quiz lifecycle events over watermill.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type names an event and doubles as its topic.
type Type string

const (
	QuizStarted  Type = "quiz.started"
	QuizAnswered Type = "quiz.answered"
	QuizFinished Type = "quiz.finished"
)

// Topics lists every topic the service publishes to.
var Topics = []Type{QuizStarted, QuizAnswered, QuizFinished}

const source = "quizcrafter"

// Event is the envelope written to the wire.
type Event struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Token     string    `json:"token"`
	SessionID string    `json:"session_id"`
	Data      any       `json:"data"`
}

// envelope is Event with the payload left undecoded.
type envelope struct {
	Event
	Data json.RawMessage `json:"data"`
}

// StartedData is the payload of QuizStarted.
type StartedData struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Total      int    `json:"total"`
}

// AnsweredData is the payload of QuizAnswered.
type AnsweredData struct {
	Index         int    `json:"index"`
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	CorrectOption string `json:"correct_option"`
	Correct       bool   `json:"correct"`
	Score         int    `json:"score"`
}

// FinishedData is the payload of QuizFinished.
type FinishedData struct {
	Subject    string    `json:"subject"`
	Topic      string    `json:"topic"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// New builds an event with a fresh ID.
func New(t Type, token, sessionID string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Token:     token,
		SessionID: sessionID,
		Data:      data,
	}
}
