package quiz

import (
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Store holds live sessions. Update applies fn to the stored session under
// the store's lock, so concurrent HTTP requests cannot interleave inside a
// mutation. Sessions returned by Get and Update share no mutable state with
// the stored one and are safe to read outside the lock.
type Store interface {
	Put(s Session) error
	Get(id string) (Session, error)
	Update(id string, fn func(*Session) error) (Session, error)
}

// defaultSessionTTL bounds how long an untouched session survives. Long
// enough for a full attempt plus reviewing results, short enough that
// abandoned sessions do not accumulate for the process lifetime.
const defaultSessionTTL = 2 * time.Hour

type memoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session Session
	touched time.Time
}

func NewInMemoryStore() Store {
	return &memoryStore{
		ttl:      defaultSessionTTL,
		now:      time.Now,
		sessions: map[string]memoryEntry{},
	}
}

func (m *memoryStore) Put(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictStale()
	m.sessions[s.ID] = memoryEntry{session: s, touched: m.now()}
	return nil
}

func (m *memoryStore) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return e.session.clone(), nil
}

func (m *memoryStore) Update(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	s := e.session
	if err := fn(&s); err != nil {
		return Session{}, err
	}
	m.sessions[id] = memoryEntry{session: s, touched: m.now()}
	return s.clone(), nil
}

// evictStale drops sessions untouched for longer than the TTL. Called with
// the write lock held; the map stays small enough that a full scan per Put
// is acceptable.
func (m *memoryStore) evictStale() {
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		if e.touched.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
