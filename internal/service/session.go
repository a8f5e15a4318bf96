package service

import (
	"sync"

	"predlozhka/internal/domain"
)

// SessionStore keeps one dialogue session per user in memory.
// Events of one user are assumed to arrive sequentially; concurrent
// writers for the same user resolve as last write wins.
type SessionStore struct {
	sessions map[int64]*domain.Session
	mu       sync.RWMutex
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*domain.Session)}
}

// Get returns a copy of the user's session, idle if there is none
func (s *SessionStore) Get(userID int64) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[userID]
	if !exists {
		return domain.NewSession(domain.StateIdle)
	}
	c := *session
	return &c
}

// Set replaces the user's session
func (s *SessionStore) Set(userID int64, session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *session
	s.sessions[userID] = &c
}

// Clear drops the user's session
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
