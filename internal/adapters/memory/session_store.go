package memory

// Package memory provides a process-local ports.SessionStore for the
// "memory" storage backend: no persistence across restarts, no external
// services. Useful for tests and throwaway environments.

import (
	"context"
	"sync"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	"github.com/eduhub/eduhub-go/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore holds the session in memory, safe for concurrent use.
type SessionStore struct {
	mu   sync.RWMutex
	sess domainauth.Session
}

// NewSessionStore constructs an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Save replaces the stored session.
func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

// Load returns the stored session. A partial token pair loads as empty, the
// same contract the persistent stores honor.
func (s *SessionStore) Load(_ context.Context) (domainauth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.sess.Authenticated() {
		return domainauth.Session{}, nil
	}
	return s.sess, nil
}

// Clear drops the stored session.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = domainauth.Session{}
	return nil
}
