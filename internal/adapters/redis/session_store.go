package redis

// Package redis provides Redis-based adapters for the eduhub client.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
)

// Hash fields for the persisted session. One hash per session slot keeps the
// three-field write atomic (a single HSET).
const (
	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
	fieldUser         = "user"
)

// SessionStore is a Redis-based session store for hosted consumers that
// cannot keep a local file (containers, serverless workers).
type SessionStore struct {
	client redis.UniversalClient
	key    string
}

// NewSessionStore creates a Redis session store under the default key.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		key:    "eduhub:session",
	}
}

// NewSessionStoreWithKey creates a Redis session store under a custom key,
// letting multiple client identities share one Redis instance.
func NewSessionStoreWithKey(client redis.UniversalClient, key string) *SessionStore {
	return &SessionStore{
		client: client,
		key:    key,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	userData := ""
	if sess.User != nil {
		data, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("marshal user profile: %w", err)
		}
		userData = string(data)
	}

	// Single HSET so readers never observe a partially written session.
	return s.client.HSet(ctx, s.key, map[string]any{
		fieldAccessToken:  sess.AccessToken,
		fieldRefreshToken: sess.RefreshToken,
		fieldUser:         userData,
	}).Err()
}

// Load returns the persisted session. A missing key, a corrupt user field, or
// a token missing its pair all yield an empty session rather than an error.
func (s *SessionStore) Load(ctx context.Context) (domainauth.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return domainauth.Session{}, nil
	}

	sess := domainauth.Session{
		AccessToken:  fields[fieldAccessToken],
		RefreshToken: fields[fieldRefreshToken],
	}
	if data := fields[fieldUser]; data != "" {
		var user domainauth.UserProfile
		if uerr := json.Unmarshal([]byte(data), &user); uerr != nil {
			// Corrupt slot: treat the whole session as absent.
			return domainauth.Session{}, nil
		}
		sess.User = &user
	}

	if !sess.Authenticated() {
		return domainauth.Session{}, nil
	}
	return sess, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
