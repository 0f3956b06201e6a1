// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - Sessions keyed by a random UUID, each owned by one player ID.
//   - Map guarded by RWMutex; each entry has its own mutex so a
//     game.Session (not concurrency-safe) is only touched by one request.
//   - Idle sessions are dropped by Sweep.
//   - State is lost when the process restarts.

package store

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
)

// ErrNotFound is returned for unknown IDs and for sessions owned by
// another player.
var ErrNotFound = errors.New("game not found")

type entry struct {
	mu      sync.Mutex
	owner   string
	session *game.Session
	touched time.Time
}

// Memory holds sessions for the HTTP server.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemory constructs an empty store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*entry), now: time.Now}
}

// Create allocates an ID, builds the session for it and registers it for
// owner. Nothing is stored when build fails.
func (m *Memory) Create(owner string, build func(id string) (*game.Session, error)) (string, error) {
	id := uuid.NewString()
	s, err := build(id)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.entries[id] = &entry{owner: owner, session: s, touched: m.now()}
	m.mu.Unlock()
	return id, nil
}

// Update runs fn with exclusive access to the session.
func (m *Memory) Update(id, owner string, fn func(*game.Session) error) error {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok || e.owner != owner {
		return errors.Wrapf(ErrNotFound, "id %q", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = m.now()
	return fn(e.session)
}

// Has reports whether id is live and owned by owner. Unlike Update it does
// not count as activity.
func (m *Memory) Has(id, owner string) bool {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	return ok && e.owner == owner
}

// Sweep removes sessions idle for longer than ttl and returns how many
// were removed.
func (m *Memory) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// Len reports the number of live sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
