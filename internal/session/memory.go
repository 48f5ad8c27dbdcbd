// Package session implements the client-side cache holding the current
// session snapshot alongside any application data the UI caches. The
// orchestrator is the single writer; reads are safe from any goroutine.
package session

import (
	"context"
	"sync"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

// MemoryStore keeps the cache in process memory, scoped to the application
// lifetime. Writes are atomic, so concurrent flows end last-write-wins with
// no partially merged state.
type MemoryStore struct {
	mu      sync.RWMutex
	session *domain.Session
	entries map[string]any
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]any)}
}

// Session implements domain.SessionStore
func (s *MemoryStore) Session(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	cached := s.session
	s.mu.RUnlock()

	if cached == nil {
		return nil, domain.ErrSessionAbsent
	}
	if cached.Expired() {
		// Lazily drop the stale entry so the next read misses cleanly.
		s.mu.Lock()
		if s.session == cached {
			s.session = nil
		}
		s.mu.Unlock()
		return nil, domain.ErrSessionAbsent
	}

	copied := *cached
	return &copied, nil
}

// SetSession implements domain.SessionStore
func (s *MemoryStore) SetSession(_ context.Context, sess *domain.Session) error {
	copied := *sess
	s.mu.Lock()
	s.session = &copied
	s.mu.Unlock()
	return nil
}

// Invalidate implements domain.SessionStore
func (s *MemoryStore) Invalidate(_ context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	return nil
}

// Clear implements domain.SessionStore
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.entries = make(map[string]any)
	s.mu.Unlock()
	return nil
}

// Put caches an application entry outside the session key
func (s *MemoryStore) Put(key string, value any) {
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Get reads an application entry
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok
}

// Len reports how many application entries are cached
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
