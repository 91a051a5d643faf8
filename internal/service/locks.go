package service

import "sync"

// tokenLocks hands out one mutex per user token. An entry lives only
// while some caller holds or waits for it.
type tokenLocks struct {
	mu    sync.Mutex
	locks map[string]*tokenLock
}

type tokenLock struct {
	sync.Mutex
	refs int
}

// lock blocks until token is free and returns its unlock func.
func (l *tokenLocks) lock(token string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*tokenLock)
	}
	tl, ok := l.locks[token]
	if !ok {
		tl = &tokenLock{}
		l.locks[token] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.Lock()
	return func() {
		tl.Unlock()
		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, token)
		}
		l.mu.Unlock()
	}
}

func (l *tokenLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
