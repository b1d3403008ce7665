package service

import (
	"context"
	"log/slog"
	"sync"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	apperrors "github.com/eduhub/eduhub-go/internal/errors"
	"github.com/eduhub/eduhub-go/internal/ports"
)

const minPasswordLength = 6

// Snapshot is an immutable view of the session state handed to observers.
// Role flags and the display name are derived here so consumers never poke
// at the profile themselves.
type Snapshot struct {
	Initialized   bool
	Authenticated bool
	User          *domainauth.UserProfile
	IsStudent     bool
	IsMentor      bool
	IsAdmin       bool
	DisplayName   string
}

// Listener observes session state changes. Listeners are invoked
// synchronously, before the mutating call returns.
type Listener func(Snapshot)

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Store   ports.SessionStore
	Gateway ports.AuthGateway
	Logger  *slog.Logger
}

// SessionManager owns the in-memory session state and orchestrates the auth
// lifecycle against the store and the gateway. All methods are safe for
// concurrent use.
type SessionManager struct {
	store   ports.SessionStore
	gateway ports.AuthGateway
	logger  *slog.Logger

	mu      sync.RWMutex
	state   Snapshot
	subs    map[int]Listener
	nextSub int
}

// NewSessionManager constructs a new SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		store:   opts.Store,
		gateway: opts.Gateway,
		logger:  logger,
		subs:    make(map[int]Listener),
	}
}

// Snapshot returns the current session view.
func (m *SessionManager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Subscribe registers a listener and returns its unsubscribe function. The
// listener immediately receives the current snapshot.
func (m *SessionManager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	current := m.state
	m.mu.Unlock()

	fn(current)
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Init restores the session from the store and validates it against the
// remote user endpoint. A stored session whose tokens no longer work is
// discarded. Init always lands in a definite state: by return the snapshot
// is initialized, authenticated or not.
func (m *SessionManager) Init(ctx context.Context) error {
	sess, err := m.store.Load(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "load stored session", "error", err)
		m.publish(unauthenticatedState())
		return err
	}
	if !sess.Authenticated() {
		m.publish(unauthenticatedState())
		return nil
	}

	// The profile fetch goes through the auth transport, so an expired
	// access token gets one refresh attempt before this fails.
	user, err := m.gateway.CurrentUser(ctx)
	if err != nil {
		m.logger.InfoContext(ctx, "stored session rejected, clearing", "error", err)
		if cerr := m.store.Clear(ctx); cerr != nil {
			m.logger.ErrorContext(ctx, "clear rejected session", "error", cerr)
		}
		m.publish(unauthenticatedState())
		return nil
	}

	sess.User = &user
	if serr := m.store.Save(ctx, sess); serr != nil {
		m.logger.ErrorContext(ctx, "persist refreshed profile", "error", serr)
	}
	m.publish(authenticatedState(&user))
	return nil
}

// Login authenticates and persists the resulting session. On failure the
// session state is left untouched.
func (m *SessionManager) Login(ctx context.Context, email, password string) error {
	if email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	if password == "" {
		return apperrors.ValidationField("password", "Password is required.")
	}

	res, err := m.gateway.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(ctx, domainauth.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	})
}

// Register creates an account after local validation. When the server
// returns a token pair the new user is signed in immediately; otherwise the
// state stays unauthenticated and the caller should prompt for login.
func (m *SessionManager) Register(ctx context.Context, in ports.RegisterInput) error {
	if err := validateRegistration(in); err != nil {
		return err
	}

	res, err := m.gateway.Register(ctx, in)
	if err != nil {
		return err
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		return nil
	}
	return m.adopt(ctx, domainauth.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		User:         res.User,
	})
}

// Logout ends the session. The server notification is best-effort; local
// state and the store are cleared no matter what.
func (m *SessionManager) Logout(ctx context.Context) error {
	sess, err := m.store.Load(ctx)
	if err != nil {
		m.logger.ErrorContext(ctx, "load session for logout", "error", err)
	}
	if sess.RefreshToken != "" {
		// Gateway swallows remote failures.
		_ = m.gateway.Logout(ctx, sess.RefreshToken)
	}

	clearErr := m.store.Clear(ctx)
	m.publish(unauthenticatedState())
	return clearErr
}

// UpdateProfile submits a partial profile update and folds the returned
// profile into the session state and the store.
func (m *SessionManager) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (domainauth.UserProfile, error) {
	user, err := m.gateway.UpdateProfile(ctx, patch)
	if err != nil {
		return domainauth.UserProfile{}, err
	}

	sess, lerr := m.store.Load(ctx)
	if lerr == nil && sess.Authenticated() {
		sess.User = &user
		if serr := m.store.Save(ctx, sess); serr != nil {
			m.logger.ErrorContext(ctx, "persist updated profile", "error", serr)
		}
	}
	m.publish(authenticatedState(&user))
	return user, nil
}

// HandleSessionExpired is the transport's expiry hook. The store is already
// cleared by the time it fires; this drops the in-memory state and notifies
// observers so the UI can route to sign-in.
func (m *SessionManager) HandleSessionExpired() {
	m.publish(unauthenticatedState())
}

// adopt persists a fresh token pair, filling in the profile from the user
// endpoint when the auth response did not include one.
func (m *SessionManager) adopt(ctx context.Context, sess domainauth.Session) error {
	if serr := m.store.Save(ctx, sess); serr != nil {
		return serr
	}
	if sess.User == nil {
		user, err := m.gateway.CurrentUser(ctx)
		if err != nil {
			m.logger.WarnContext(ctx, "fetch profile after auth", "error", err)
		} else {
			sess.User = &user
			if serr := m.store.Save(ctx, sess); serr != nil {
				m.logger.ErrorContext(ctx, "persist fetched profile", "error", serr)
			}
		}
	}
	m.publish(authenticatedState(sess.User))
	return nil
}

// publish swaps in the new state and notifies listeners synchronously. The
// lock is released before listeners run so they may read the snapshot.
func (m *SessionManager) publish(state Snapshot) {
	m.mu.Lock()
	m.state = state
	listeners := make([]Listener, 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func validateRegistration(in ports.RegisterInput) error {
	if in.Name == "" {
		return apperrors.ValidationField("name", "Name is required.")
	}
	if in.Email == "" {
		return apperrors.ValidationField("email", "Email is required.")
	}
	if len(in.Password) < minPasswordLength {
		return apperrors.ValidationField("password", "Password must be at least 6 characters.")
	}
	if in.Password != in.ConfirmPassword {
		return apperrors.ValidationField("confirm_password", "Passwords do not match.")
	}
	if in.Role != "" {
		switch in.Role {
		case domainauth.RoleStudent, domainauth.RoleMentor, domainauth.RoleAdmin:
		default:
			return apperrors.ValidationField("role", "Unknown role.")
		}
	}
	return nil
}

func unauthenticatedState() Snapshot {
	return Snapshot{Initialized: true}
}

func authenticatedState(user *domainauth.UserProfile) Snapshot {
	s := Snapshot{Initialized: true, Authenticated: true, User: user}
	if user != nil {
		s.IsStudent = user.Role == domainauth.RoleStudent
		s.IsMentor = user.Role == domainauth.RoleMentor
		s.IsAdmin = user.Role == domainauth.RoleAdmin
		s.DisplayName = user.DisplayName()
	}
	return s
}
