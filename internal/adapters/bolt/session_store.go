package bolt

// Package bolt provides a file-backed session store for the eduhub client.
// It is the durable local slot the web client kept in browser storage.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	domainauth "github.com/eduhub/eduhub-go/internal/domain/auth"
)

var sessionBucket = []byte("session")

// The three named slots the store persists. Tokens are opaque strings; the
// user slot holds the serialized profile.
var (
	keyAccessToken  = []byte("access_token")
	keyRefreshToken = []byte("refresh_token")
	keyUser         = []byte("user")
)

// SessionStore persists the current session in a bbolt database file.
// Save writes all three slots in one transaction, so readers never observe a
// partial session.
type SessionStore struct {
	db *bbolt.DB
}

// NewSessionStore creates a session store on an already-open bbolt database.
func NewSessionStore(db *bbolt.DB) (*SessionStore, error) {
	if db == nil {
		return nil, errors.New("bolt database is required")
	}
	err := db.Update(func(tx *bbolt.Tx) error {
		_, berr := tx.CreateBucketIfNotExists(sessionBucket)
		return berr
	})
	if err != nil {
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &SessionStore{db: db}, nil
}

// Open opens (creating if needed) a bbolt database at path and returns a
// session store on it. The caller owns the database and should Close it.
func Open(path string) (*SessionStore, *bbolt.DB, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open session database: %w", err)
	}
	store, err := NewSessionStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

func (s *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	var userData []byte
	if sess.User != nil {
		data, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("marshal user profile: %w", err)
		}
		userData = data
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if err := b.Put(keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		if err := b.Put(keyRefreshToken, []byte(sess.RefreshToken)); err != nil {
			return err
		}
		if userData == nil {
			return b.Delete(keyUser)
		}
		return b.Put(keyUser, userData)
	})
}

// Load returns the persisted session. Absent or corrupt data (an
// undeserializable user slot, or a token slot missing its pair) yields an
// empty session, never an error.
func (s *SessionStore) Load(_ context.Context) (domainauth.Session, error) {
	var sess domainauth.Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		sess.AccessToken = string(b.Get(keyAccessToken))
		sess.RefreshToken = string(b.Get(keyRefreshToken))

		if data := b.Get(keyUser); len(data) > 0 {
			var user domainauth.UserProfile
			if uerr := json.Unmarshal(data, &user); uerr != nil {
				// Corrupt slot: treat the whole session as absent.
				sess = domainauth.Session{}
				return nil
			}
			sess.User = &user
		}
		return nil
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("load session: %w", err)
	}

	if !sess.Authenticated() {
		return domainauth.Session{}, nil
	}
	return sess, nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		for _, key := range [][]byte{keyAccessToken, keyRefreshToken, keyUser} {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
