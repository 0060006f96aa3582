// internal/store/memory.go
//
// In-memory session store.
// Sessions live only as long as the process; nothing is written to disk.
//
// Characteristics:
//   - Stores *game.Session values keyed by ID.
//   - game.Session is single-threaded, so every access to one goes through
//     Update, which holds that session's lock for the duration of fn.
//     Different sessions never block each other.
//   - The map itself is guarded by an RWMutex.
//   - Idle sessions can be dropped with Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordstack/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Update runs fn with exclusive access to the session with the given ID.
	Update(ctx context.Context, id string, fn func(*game.Session) error) error

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many sessions are held.
	Len() int
}

type entry struct {
	mu       sync.Mutex // serializes access to sess
	sess     *game.Session
	lastUsed time.Time
}

// Memory is the in-memory Store implementation.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{sessions: make(map[string]*entry), now: time.Now}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{sess: s, lastUsed: m.now()}
	return nil
}

func (m *Memory) Update(ctx context.Context, id string, fn func(*game.Session) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	e.lastUsed = m.now()
	return fn(e.sess)
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions not touched for longer than idle and returns how
// many were removed.
func (m *Memory) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if !e.mu.TryLock() {
			continue // in use right now
		}
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
		e.mu.Unlock()
	}
	return n
}
