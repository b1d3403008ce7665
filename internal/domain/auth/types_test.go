package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserProfile_DisplayName_FullName(t *testing.T) {
	u := UserProfile{FirstName: "Jane", LastName: "Doe", Username: "jdoe", Email: "jane@example.com"}
	assert.Equal(t, "Jane Doe", u.DisplayName())
}

func TestUserProfile_DisplayName_FallsBackToUsername(t *testing.T) {
	u := UserProfile{FirstName: "Jane", Username: "jdoe", Email: "jane@example.com"}
	assert.Equal(t, "jdoe", u.DisplayName())
}

func TestUserProfile_DisplayName_FallsBackToEmail(t *testing.T) {
	u := UserProfile{Email: "jane@example.com"}
	assert.Equal(t, "jane@example.com", u.DisplayName())
}

func TestSession_Authenticated(t *testing.T) {
	assert.True(t, Session{AccessToken: "a", RefreshToken: "r"}.Authenticated())
	assert.False(t, Session{}.Authenticated())

	// A lone token never counts as an authenticated session.
	assert.False(t, Session{AccessToken: "a"}.Authenticated())
	assert.False(t, Session{RefreshToken: "r"}.Authenticated())
}

func TestSession_Empty(t *testing.T) {
	assert.True(t, Session{}.Empty())
	assert.False(t, Session{AccessToken: "a"}.Empty())
	assert.False(t, Session{User: &UserProfile{Email: "x@example.com"}}.Empty())
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"two tokens", "Jane Doe", "Jane", "Doe"},
		{"single token", "Madonna", "Madonna", ""},
		{"three tokens", "Mary Jane Watson", "Mary", "Jane Watson"},
		{"surrounding whitespace", "  Jane   Doe  ", "Jane", "Doe"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
