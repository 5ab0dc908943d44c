// Package session persists the host's login state between CLI runs: the
// bearer token issued by the marketplace API and the identity it belongs to.
// API layers read the token from here at call time rather than having it
// passed in, so an expired session can be cleared in one place.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Session is the persisted login state.
type Session struct {
	Token  *oauth2.Token `json:"token,omitempty"`
	HostID string        `json:"hostId,omitempty"`
	Email  string        `json:"email,omitempty"`
}

// Store reads and writes the session file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. A missing file yields an empty session
// rather than an error, so a logged-out state is not a failure.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return &sess, nil
}

// Save persists the session. The file is written with owner-only permissions
// because it contains the bearer token.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-absent session is
// not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// BearerToken returns the stored access token, or ok=false when no session
// exists. Callers omit the Authorization header entirely in the false case
// and let the server answer 401.
func (s *Store) BearerToken() (string, bool) {
	sess, err := s.Load()
	if err != nil || sess.Token == nil || sess.Token.AccessToken == "" {
		return "", false
	}
	return sess.Token.AccessToken, true
}

// SubjectFromToken extracts the subject claim from a JWT access token without
// verifying the signature. The client only uses it to detect account switches
// and label the cache owner; authorization stays entirely server-side.
func SubjectFromToken(accessToken string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return "", fmt.Errorf("failed to parse access token: %w", err)
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("access token has no subject claim")
	}
	return subject, nil
}
