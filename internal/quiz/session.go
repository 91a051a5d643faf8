package quiz

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizcrafter/internal/quizgen"
)

// now is replaced in tests.
var now = time.Now

// Meta describes the quiz being started.
type Meta struct {
	ID         string
	Subject    string
	Topic      string
	Difficulty quizgen.Difficulty
	StartedAt  time.Time
}

// Session is the full state of one user's quiz. The zero value is Idle.
// Sessions are values: transitions return a new Session and never modify
// their argument.
type Session struct {
	ID           string             `json:"id,omitempty"`
	Subject      string             `json:"subject,omitempty"`
	Topic        string             `json:"topic,omitempty"`
	Difficulty   quizgen.Difficulty `json:"difficulty,omitempty"`
	Questions    []quizgen.Question `json:"questions,omitempty"`
	CurrentIndex int                `json:"current_index"`
	Score        int                `json:"score"`
	StartedAt    time.Time          `json:"started_at"`
	FinishedAt   time.Time          `json:"finished_at"`
}

// Outcome describes the effect of one answer.
type Outcome struct {
	Index         int    `json:"index"`
	Correct       bool   `json:"correct"`
	Selected      string `json:"selected"`
	CorrectOption string `json:"correct_option"`
	CorrectText   string `json:"correct_text"`
	Finished      bool   `json:"finished"`
}

// State derives the phase from the question list and cursor.
func (s Session) State() State {
	switch {
	case len(s.Questions) == 0:
		return Idle
	case s.CurrentIndex < len(s.Questions):
		return InProgress
	default:
		return Finished
	}
}

// Total returns the number of questions.
func (s Session) Total() int {
	return len(s.Questions)
}

// Current returns the question awaiting an answer.
func (s Session) Current() (quizgen.Question, bool) {
	if s.State() != InProgress {
		return quizgen.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Start begins a quiz over questions. Any earlier session is replaced.
func Start(meta Meta, questions []quizgen.Question) (Session, error) {
	if len(questions) == 0 {
		return Session{}, ErrNoQuestions
	}
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.StartedAt.IsZero() {
		meta.StartedAt = now()
	}
	return Session{
		ID:         meta.ID,
		Subject:    meta.Subject,
		Topic:      meta.Topic,
		Difficulty: meta.Difficulty,
		Questions:  append([]quizgen.Question(nil), questions...),
		StartedAt:  meta.StartedAt,
	}, nil
}

// Answer scores selected against the current question and advances the
// cursor. A blank selection returns ErrNoSelection and s unchanged.
func Answer(s Session, selected string) (Session, Outcome, error) {
	if strings.TrimSpace(selected) == "" {
		return s, Outcome{}, ErrNoSelection
	}
	q, ok := s.Current()
	if !ok {
		return s, Outcome{}, ErrNotInProgress
	}

	out := Outcome{
		Index:         s.CurrentIndex,
		Correct:       quizgen.Label(selected) == q.CorrectLabel(),
		Selected:      selected,
		CorrectOption: q.CorrectLabel(),
		CorrectText:   q.CorrectText(),
	}

	next := s
	if out.Correct {
		next.Score++
	}
	next.CurrentIndex++
	if next.State() == Finished {
		next.FinishedAt = now()
		out.Finished = true
	}
	return next, out, nil
}

// AnswerAt is Answer for a submission keyed by session ID and question
// index. A submission for another session, or for any index other than
// the current one, returns ErrStaleSubmission without a transition.
func AnswerAt(s Session, sessionID string, index int, selected string) (Session, Outcome, error) {
	if s.State() == InProgress && (sessionID != s.ID || index != s.CurrentIndex) {
		return s, Outcome{}, ErrStaleSubmission
	}
	return Answer(s, selected)
}

// Reset returns the Idle session.
func Reset() Session {
	return Session{}
}
