// Package generation hands out increasing generation numbers per review
// session so that a result computed for an older input snapshot can be
// recognised and dropped.
package generation

import (
	"sync"
	"time"

	"hotel-reservation/internal/pkg/clock"
)

type Token struct {
	Session    string
	Generation uint64
}

type entry struct {
	latest   uint64
	lastSeen time.Time
}

type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	clock    clock.Clock
}

func NewTracker(ttl time.Duration, c clock.Clock) *Tracker {
	return &Tracker{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		clock:    c,
	}
}

// Begin registers a new computation for session. An empty session yields a
// token that is always current.
func (t *Tracker) Begin(session string) Token {
	if session == "" {
		return Token{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	t.pruneLocked(now)

	e, ok := t.sessions[session]
	if !ok {
		e = &entry{}
		t.sessions[session] = e
	}
	e.latest++
	e.lastSeen = now
	return Token{Session: session, Generation: e.latest}
}

// IsCurrent reports whether no newer computation began for the token's session.
func (t *Tracker) IsCurrent(tok Token) bool {
	if tok.Session == "" {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.sessions[tok.Session]
	if !ok {
		// pruned; nothing newer can exist
		return true
	}
	return e.latest == tok.Generation
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

func (t *Tracker) pruneLocked(now time.Time) {
	if t.ttl <= 0 {
		return
	}
	for k, e := range t.sessions {
		if now.Sub(e.lastSeen) > t.ttl {
			delete(t.sessions, k)
		}
	}
}
