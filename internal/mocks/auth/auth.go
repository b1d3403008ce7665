package auth

// Package auth contains simple hand-written test doubles for auth ports.
// Each mock exposes overridable function fields so tests only stub what
// they assert on.

import (
	"context"
	"sync"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	"github.com/eduhub/eduhub-go/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.AuthGateway  = (*MockAuthGateway)(nil)
)

// MemorySessionStore is an in-memory ports.SessionStore safe for concurrent
// use. It mirrors the persistent adapters' semantics: an absent or partial
// token pair loads as an empty session.
type MemorySessionStore struct {
	mu   sync.RWMutex
	sess domainauth.Session

	SaveErr  error
	LoadErr  error
	ClearErr error
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

func (s *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context) (domainauth.Session, error) {
	if s.LoadErr != nil {
		return domainauth.Session{}, s.LoadErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.sess.Authenticated() {
		return domainauth.Session{}, nil
	}
	return s.sess, nil
}

func (s *MemorySessionStore) Clear(_ context.Context) error {
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = domainauth.Session{}
	return nil
}

// MockAuthGateway implements ports.AuthGateway with overridable behavior.
type MockAuthGateway struct {
	LoginFunc              func(ctx context.Context, email, password string) (ports.LoginResult, error)
	RegisterFunc           func(ctx context.Context, in ports.RegisterInput) (ports.RegisterResult, error)
	LogoutFunc             func(ctx context.Context, refreshToken string) error
	RefreshAccessTokenFunc func(ctx context.Context, refreshToken string) (string, error)
	CurrentUserFunc        func(ctx context.Context) (domainauth.UserProfile, error)
	UpdateProfileFunc      func(ctx context.Context, patch ports.ProfilePatch) (domainauth.UserProfile, error)
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return ports.LoginResult{}, nil
}

func (m *MockAuthGateway) Register(ctx context.Context, in ports.RegisterInput) (ports.RegisterResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return ports.RegisterResult{}, nil
}

func (m *MockAuthGateway) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthGateway) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshAccessTokenFunc != nil {
		return m.RefreshAccessTokenFunc(ctx, refreshToken)
	}
	return "", nil
}

func (m *MockAuthGateway) CurrentUser(ctx context.Context) (domainauth.UserProfile, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return domainauth.UserProfile{}, nil
}

func (m *MockAuthGateway) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (domainauth.UserProfile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, patch)
	}
	return domainauth.UserProfile{}, nil
}
