package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/quizcrafter/internal/quiz"
)

type memoryEntry struct {
	session quiz.Session
	expires time.Time
}

// Memory is an in-process Store with lazy TTL expiry.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates a Memory store. A non-positive ttl uses DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Load(_ context.Context, token string) (quiz.Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[token]
	if !ok {
		return quiz.Session{}, false, nil
	}
	if m.now().After(e.expires) {
		delete(m.entries, token)
		return quiz.Session{}, false, nil
	}
	return e.session, true, nil
}

func (m *Memory) Save(_ context.Context, token string, s quiz.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = memoryEntry{session: s, expires: m.now().Add(m.ttl)}
	m.sweepLocked()
	return nil
}

func (m *Memory) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
	return nil
}

// Len returns the number of live sessions.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	return len(m.entries)
}

func (m *Memory) sweepLocked() {
	now := m.now()
	for k, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, k)
		}
	}
}
