// Package sessionstore keeps one quiz session per user token.
package sessionstore

import (
	"context"
	"time"

	"github.com/abhisek/quizcrafter/internal/quiz"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 24 * time.Hour

// Store persists quiz sessions by user token. Tokens never share state.
type Store interface {
	// Load returns the session for token and whether one exists.
	Load(ctx context.Context, token string) (quiz.Session, bool, error)

	// Save stores s for token and refreshes its TTL.
	Save(ctx context.Context, token string, s quiz.Session) error

	// Delete removes the session for token. Missing tokens are not an error.
	Delete(ctx context.Context, token string) error
}
