package aarogyam

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionVersion is the persisted session format version.
const DefaultSessionVersion = 1

// sessionData is the persisted session format: one serialized record
// holding the token and the signed-in user.
type sessionData struct {
	Version int    `json:"version"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// SessionStore is the single source of truth for "who is signed in".
// State is persisted atomically to a single JSON file so it survives
// between runs. The store never validates the token: any non-empty token
// counts as authenticated, and a stale token simply makes subsequent API
// calls fail.
//
// Invariant: a user is recorded iff a token is; a token without a
// resolved identity is not a valid session.
type SessionStore struct {
	mu   sync.RWMutex
	path string
	data *sessionData
}

// OpenSessionStore opens the session store at path, restoring any
// persisted session. An absent or malformed file starts the store
// unauthenticated; neither is an error. The parent directory is created
// with 0700 permissions.
func OpenSessionStore(path string) (*SessionStore, error) {
	store := &SessionStore{
		path: path,
		data: &sessionData{Version: DefaultSessionVersion},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	store.load()
	return store, nil
}

// load restores persisted state. Anything unreadable or malformed is
// discarded and the store starts unauthenticated.
func (s *SessionStore) load() {
	f, err := os.Open(s.path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil || len(raw) == 0 {
		return
	}

	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}
	if data.Version > DefaultSessionVersion {
		return
	}
	// A token without a user (or vice versa) is not a valid session.
	if data.Token == "" || data.User == nil {
		return
	}

	s.data = &data
}

// Login stores the token and user and persists the session. An empty
// token is rejected; no other validation is performed.
func (s *SessionStore) Login(token string, user User) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = &sessionData{
		Version: DefaultSessionVersion,
		Token:   token,
		User:    &user,
	}
	return s.persistLocked()
}

// Logout clears the session and removes the persisted file.
func (s *SessionStore) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = &sessionData{Version: DefaultSessionVersion}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove: %v", ErrSessionPersist, err)
	}
	return nil
}

// IsAuthenticated reports whether a token is present. Nothing more: the
// token's validity is the backend's problem.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token != ""
}

// Token returns the current session token, empty when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Token
}

// Current returns the signed-in user, or nil when signed out.
func (s *SessionStore) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

// Path returns the session file path.
func (s *SessionStore) Path() string {
	return s.path
}

// ExpiresAt decodes the token as a JWT without verifying it and returns
// its expiry claim, if both are present. Display-only: gating and
// API calls never consult this.
func (s *SessionStore) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// persistLocked writes the session atomically using the temp file +
// fsync + rename pattern. Must be called with the write lock held.
func (s *SessionStore) persistLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrSessionPersist, err)
	}

	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", ErrSessionPersist, err)
	}

	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write: %v", ErrSessionPersist, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: fsync: %v", ErrSessionPersist, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close: %v", ErrSessionPersist, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %v", ErrSessionPersist, err)
	}

	return nil
}
