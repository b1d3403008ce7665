package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
)

// SessionStore persists the single current session across process restarts.
// The store is the only owner of session truth; everything else holds a
// read/derive view.
//
// Load must treat absent or corrupt data (any slot not deserializable, or a
// token missing its pair) as an empty session rather than an error.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Load(ctx context.Context) (domainauth.Session, error)
	Clear(ctx context.Context) error
}

// RegisterInput groups parameters for account registration.
type RegisterInput struct {
	// Name is the display name as typed by the user; it is split at the
	// first whitespace boundary into first/last name for submission.
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            domainauth.Role
}

// LoginResult is a successful authentication response: a token pair and,
// when the server includes one, the user's profile.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domainauth.UserProfile
}

// RegisterResult is the registration response. Tokens are optional: when the
// server includes a pair the caller is auto-authenticated.
type RegisterResult struct {
	AccessToken  string
	RefreshToken string
	User         *domainauth.UserProfile
}

// ProfilePatch carries a partial profile update; nil fields are not sent.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Bio       *string
	Location  *string
	Skills    *[]string
	Interests *[]string
}

// AuthGateway translates auth intents into remote service calls and
// normalizes backend error shapes into display-ready errors.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)

	// Register submits a new account. Local input validation is the
	// caller's concern; the gateway only shapes and sends the request.
	Register(ctx context.Context, in RegisterInput) (RegisterResult, error)

	// Logout notifies the server best-effort; network failures are
	// swallowed, never surfaced.
	Logout(ctx context.Context, refreshToken string) error

	// RefreshAccessToken exchanges the refresh token for a new access
	// token. A rejection is reported as a refresh_invalid error.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	CurrentUser(ctx context.Context) (domainauth.UserProfile, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (domainauth.UserProfile, error)
}
