package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls per model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// QuizResultData is the outcome of one finished quiz.
type QuizResultData struct {
	SessionID  string
	UserToken  string
	Subject    string
	Topic      string
	Difficulty string
	Score      int
	Total      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// QuizResult is a stored quiz result.
type QuizResult struct {
	ID       int
	Sequence int64
	QuizResultData
}

// QuizAnswerData is one submitted answer.
type QuizAnswerData struct {
	SessionID     string
	QuestionIndex int
	Question      string
	Selected      string
	CorrectOption string
	Correct       bool
	AnsweredAt    time.Time
}

// QuizAnswer is a stored answer.
type QuizAnswer struct {
	ID       int
	Sequence int64
	QuizAnswerData
}

// QuizRepo stores finished quizzes and their answers.
type QuizRepo interface {
	// AppendQuizAnswer records an answer. Re-recording the same
	// (session, index) pair is a no-op.
	AppendQuizAnswer(ctx context.Context, data QuizAnswerData) error

	// AppendQuizResult records a finished quiz. Re-recording the same
	// session is a no-op.
	AppendQuizResult(ctx context.Context, data QuizResultData) error

	// QueryQuizResults returns results newest first.
	QueryQuizResults(ctx context.Context, opts QueryOpts) ([]QuizResult, error)

	// QuizAnswers returns the answers of one session in question order.
	QuizAnswers(ctx context.Context, sessionID string) ([]QuizAnswer, error)
}
