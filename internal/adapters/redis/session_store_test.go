package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
)

// setupTestRedis starts an in-process miniredis and returns a client bound to it.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testSession() domainauth.Session {
	return domainauth.Session{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		User: &domainauth.UserProfile{
			ID:        42,
			Email:     "student@demo.com",
			FirstName: "Jane",
			LastName:  "Doe",
			Role:      domainauth.RoleStudent,
		},
	}
}

func TestSessionStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	sess := testSession()
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)
}

func TestSessionStore_LoadMissingKey(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestSessionStore_ClearThenLoadIsEmpty(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession()))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestSessionStore_CorruptUserFieldTreatedAsAbsent(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession()))
	require.NoError(t, client.HSet(ctx, "eduhub:session", fieldUser, "{not json").Err())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestSessionStore_LoneTokenTreatedAsUnauthenticated(t *testing.T) {
	client := setupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, client.HSet(ctx, "eduhub:session", fieldAccessToken, "orphan").Err())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}

func TestSessionStore_CustomKeyIsolation(t *testing.T) {
	client := setupTestRedis(t)
	a := NewSessionStoreWithKey(client, "tenant-a:session")
	b := NewSessionStoreWithKey(client, "tenant-b:session")
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, testSession()))

	loaded, err := b.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Empty())

	loaded, err = a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-abc", loaded.AccessToken)
}

func TestSessionStore_SaveOverwritesPrevious(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession()))

	next := domainauth.Session{AccessToken: "new-access", RefreshToken: "refresh-xyz"}
	require.NoError(t, store.Save(ctx, next))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access", loaded.AccessToken)
	assert.Nil(t, loaded.User)
}
