package auth

import (
	"context"
	"testing"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	"github.com/eduhub/eduhub-go/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore_SaveLoadClear(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())

	saved := domainauth.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         &domainauth.UserProfile{ID: 7, Username: "kai"},
	}
	require.NoError(t, store.Save(ctx, saved))

	sess, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, sess)

	require.NoError(t, store.Clear(ctx))
	sess, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())
}

func TestMemorySessionStore_PartialPairLoadsEmpty(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{AccessToken: "only-access"}))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, sess.Empty())
}

func TestMockAuthGateway_Defaults(t *testing.T) {
	gw := &MockAuthGateway{}
	ctx := context.Background()

	_, err := gw.Login(ctx, "a@b.c", "pw")
	assert.NoError(t, err)
	_, err = gw.CurrentUser(ctx)
	assert.NoError(t, err)
	assert.NoError(t, gw.Logout(ctx, "refresh"))
}

func TestMockAuthGateway_CustomFunc(t *testing.T) {
	gw := &MockAuthGateway{
		LoginFunc: func(_ context.Context, email, _ string) (ports.LoginResult, error) {
			return ports.LoginResult{
				AccessToken:  "tok",
				RefreshToken: "ref",
				User:         &domainauth.UserProfile{Email: email},
			}, nil
		},
	}

	res, err := gw.Login(context.Background(), "student@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, "student@example.com", res.User.Email)
}
