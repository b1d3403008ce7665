package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	apperrors "github.com/eduhub/eduhub-go/internal/errors"
	mocks "github.com/eduhub/eduhub-go/internal/mocks/auth"
)

func seededStore(t *testing.T, access, refresh string) *mocks.MemorySessionStore {
	t.Helper()
	store := mocks.NewMemorySessionStore()
	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &domainauth.UserProfile{ID: 1, Username: "kai"},
	}))
	return store
}

func newTransport(t *testing.T, opts Options) *Transport {
	t.Helper()
	tr, err := New(opts)
	require.NoError(t, err)
	return tr
}

func TestTransport_InjectsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTransport(t, Options{
		Store: seededStore(t, "access-1", "refresh-1"),
		Refresh: func(context.Context, string) (string, error) {
			t.Fatal("refresh must not run on a 200")
			return "", nil
		},
	})

	client := &http.Client{Transport: tr}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestTransport_NoSessionSendsAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTransport(t, Options{
		Store:   mocks.NewMemorySessionStore(),
		Refresh: func(context.Context, string) (string, error) { return "", nil },
	})

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestTransport_AnonymousUnauthorizedPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var refreshed atomic.Int32
	tr := newTransport(t, Options{
		Store: mocks.NewMemorySessionStore(),
		Refresh: func(context.Context, string) (string, error) {
			refreshed.Add(1)
			return "new", nil
		},
	})

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, refreshed.Load())
}

func TestTransport_RefreshAndReplayOnce(t *testing.T) {
	var tokens []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		tokens = append(tokens, r.Header.Get("Authorization"))
		n := len(tokens)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	store := seededStore(t, "stale", "refresh-1")
	var refreshCalls atomic.Int32
	tr := newTransport(t, Options{
		Store: store,
		Refresh: func(_ context.Context, refreshToken string) (string, error) {
			refreshCalls.Add(1)
			assert.Equal(t, "refresh-1", refreshToken)
			return "fresh", nil
		},
	})

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, tokens)
	assert.Equal(t, int32(1), refreshCalls.Load())

	sess, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
}

func TestTransport_ReplayBodyIsRewound(t *testing.T) {
	var bodies []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	tr := newTransport(t, Options{
		Store:   seededStore(t, "stale", "refresh-1"),
		Refresh: func(context.Context, string) (string, error) { return "fresh", nil },
	})

	resp, err := (&http.Client{Transport: tr}).Post(srv.URL, "application/json", strings.NewReader(`{"title":"Go Basics"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []string{`{"title":"Go Basics"}`, `{"title":"Go Basics"}`}, bodies)
}

func TestTransport_SecondUnauthorizedIsTerminal(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	var refreshCalls atomic.Int32
	tr := newTransport(t, Options{
		Store: seededStore(t, "stale", "refresh-1"),
		Refresh: func(context.Context, string) (string, error) {
			refreshCalls.Add(1)
			return "fresh", nil
		},
	})

	resp, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestTransport_RefreshFailureClearsSessionAndSignals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := seededStore(t, "stale", "refresh-1")
	var expired atomic.Bool
	tr := newTransport(t, Options{
		Store: store,
		Refresh: func(context.Context, string) (string, error) {
			return "", apperrors.RefreshInvalid("token is blacklisted")
		},
		OnSessionExpired: func() { expired.Store(true) },
	})

	_, err := (&http.Client{Transport: tr}).Get(srv.URL)
	require.Error(t, err)
	assert.True(t, apperrors.IsRefreshInvalid(err))
	assert.True(t, expired.Load())

	sess, lerr := store.Load(context.Background())
	require.NoError(t, lerr)
	assert.True(t, sess.Empty())
}

func TestTransport_ConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	// All three stale requests are released at once so their 401s land
	// together and contend for the same in-flight refresh.
	var stale sync.WaitGroup
	stale.Add(3)
	var served atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer stale" {
			stale.Done()
			stale.Wait()
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var refreshCalls atomic.Int32
	tr := newTransport(t, Options{
		Store: seededStore(t, "stale", "refresh-1"),
		Refresh: func(context.Context, string) (string, error) {
			time.Sleep(150 * time.Millisecond)
			refreshCalls.Add(1)
			return "fresh", nil
		},
	})

	client := &http.Client{Transport: tr}
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.Get(srv.URL)
			if assert.NoError(t, err) {
				_ = resp.Body.Close()
				served.Add(1)
				assert.Equal(t, http.StatusOK, resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), served.Load())
	assert.Equal(t, int32(1), refreshCalls.Load())
}
