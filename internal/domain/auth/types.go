package auth

// Package auth contains domain-level types for the session/auth lifecycle.
// It is pure and free of transport/adapter concerns.

import "strings"

// Role represents a platform authorization role.
// Keep string form for easy persistence and JSON transport.
// Valid values are defined as constants below.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
	RoleAdmin   Role = "admin"
)

// UserProfile is the authenticated user's profile as served by the remote
// user endpoint. Field names follow the API's snake_case JSON.
type UserProfile struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username,omitempty"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      Role     `json:"role"`
	Bio       string   `json:"bio,omitempty"`
	Location  string   `json:"location,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// DisplayName returns "First Last" when both names are present, otherwise the
// username, otherwise the email address.
func (u UserProfile) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Session pairs the current token set with the authenticated user's profile.
// Tokens are opaque strings; the client never inspects their content.
type Session struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *UserProfile `json:"user,omitempty"`
}

// Authenticated reports whether the session holds a complete token pair.
// Access and refresh tokens are either both present or both absent; a session
// with only one is treated as unauthenticated.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// Empty reports whether the session carries no state at all.
func (s Session) Empty() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == nil
}

// SplitName splits a display name at the first whitespace boundary: the first
// token becomes the first name and the remainder the last name ("" if none).
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.Fields(name)
	first = parts[0]
	last = strings.Join(parts[1:], " ")
	return first, last
}
