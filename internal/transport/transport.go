package transport

// Package transport implements the request pipeline every outbound call goes
// through: bearer credential injection and the refresh-and-replay-once
// recovery for expired access tokens.

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
	apperrors "github.com/eduhub/eduhub-go/internal/errors"
	"github.com/eduhub/eduhub-go/internal/ports"
)

// Refresher exchanges a refresh token for a new access token. It must call
// the refresh endpoint directly, not through this transport, or an expired
// token would recurse into another refresh.
type Refresher func(ctx context.Context, refreshToken string) (string, error)

// Options groups dependencies for the Transport.
type Options struct {
	// Base is the underlying round tripper; http.DefaultTransport when nil.
	Base http.RoundTripper
	// Store holds session truth; the transport reads the token pair from it
	// and persists the rotated access token after a successful refresh.
	Store ports.SessionStore
	// Refresh obtains a new access token when a request comes back 401.
	Refresh Refresher
	// OnSessionExpired is invoked after an irrecoverable refresh failure,
	// once the store has been cleared. Consumers use it to redirect to the
	// unauthenticated entry point. Optional.
	OnSessionExpired func()
	// Logger for refresh outcomes. Optional.
	Logger *slog.Logger
}

// Transport annotates outbound requests with the current access token and, on
// a 401, refreshes the token and replays the request exactly once. A 401 on
// the replay passes through; it never triggers a second refresh, so there is
// no refresh loop. Concurrent 401s share a single in-flight refresh call.
type Transport struct {
	base             http.RoundTripper
	store            ports.SessionStore
	refresh          Refresher
	onSessionExpired func()
	logger           *slog.Logger

	group singleflight.Group
}

// New constructs a Transport.
func New(opts Options) (*Transport, error) {
	if opts.Store == nil {
		return nil, errors.New("session store is required")
	}
	if opts.Refresh == nil {
		return nil, errors.New("refresh function is required")
	}
	base := opts.Base
	if base == nil {
		base = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		base:             base,
		store:            opts.Store,
		refresh:          opts.Refresh,
		onSessionExpired: opts.OnSessionExpired,
		logger:           logger,
	}, nil
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	sess, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	attempt := req.Clone(ctx)
	attempt.Header.Set("X-Request-ID", uuid.NewString())
	if sess.Authenticated() {
		attempt.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := t.base.RoundTrip(attempt)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || !sess.Authenticated() {
		// Everything except an expired-credential 401 passes through
		// unmodified, including 401s on unauthenticated calls (those are
		// the remote service rejecting the request itself, not a stale
		// token).
		return resp, nil
	}

	newAccess, refreshErr := t.refreshAccessToken(ctx, sess)
	if refreshErr != nil {
		drainBody(resp)
		return nil, refreshErr
	}

	replay, buildErr := rebuildRequest(ctx, req)
	if buildErr != nil {
		drainBody(resp)
		return nil, buildErr
	}
	drainBody(resp)

	replay.Header.Set("X-Request-ID", uuid.NewString())
	replay.Header.Set("Authorization", "Bearer "+newAccess)

	// The replay happens at most once by construction: a second 401 is
	// returned to the caller as-is.
	return t.base.RoundTrip(replay)
}

// refreshAccessToken performs the shared refresh-and-persist step. Concurrent
// callers holding the same refresh token are collapsed into one remote call.
func (t *Transport) refreshAccessToken(ctx context.Context, sess domainauth.Session) (string, error) {
	v, err, _ := t.group.Do(sess.RefreshToken, func() (any, error) {
		access, rerr := t.refresh(ctx, sess.RefreshToken)
		if rerr != nil {
			return "", rerr
		}

		// Refresh token unchanged; only the access token rotates.
		updated := sess
		updated.AccessToken = access
		if serr := t.store.Save(ctx, updated); serr != nil {
			return "", serr
		}
		return access, nil
	})
	if err != nil {
		t.logger.WarnContext(ctx, "token refresh failed, clearing session", "error", err)
		t.expireSession(ctx)
		return "", apperrors.Wrap(err, apperrors.ErrCodeRefreshInvalid, "Your session has expired. Please sign in again.")
	}
	return v.(string), nil
}

// expireSession clears persisted state and signals the consumer. The clear is
// unconditional so no partial token pair outlives a failed refresh.
func (t *Transport) expireSession(ctx context.Context) {
	if err := t.store.Clear(ctx); err != nil {
		t.logger.ErrorContext(ctx, "clear session after failed refresh", "error", err)
	}
	if t.onSessionExpired != nil {
		t.onSessionExpired()
	}
}

// rebuildRequest produces a fresh copy of the original request with a
// replayable body.
func rebuildRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	replay := req.Clone(ctx)
	if req.Body == nil || req.Body == http.NoBody {
		return replay, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("cannot replay request: body is not rewindable")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, err
	}
	replay.Body = body
	return replay, nil
}

// drainBody releases a response's connection for reuse.
func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
