// Package session holds the persisted bearer-token session. It is an
// explicit object injected into the API client and the shell; nothing in
// the codebase reaches for a global token store.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	mu    sync.Mutex
	path  string
	token string
}

// Open loads the session from path. A missing file is a logged-out
// session, not an error.
func Open(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated is a pure presence predicate. It does not validate
// token freshness; an expired token surfaces as a 401 on the next call.
func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(s.token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear drops the token from memory and disk. Idempotent.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		// Best effort: the in-memory token is gone either way.
		_ = err
	}
}

// Claims is the display-only view of the token payload.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// InspectClaims parses the stored token without verifying its signature.
// The result is for display only (whoami output); it never gates a request.
func (s *Session) InspectClaims() (Claims, error) {
	token := s.Token()
	if token == "" {
		return Claims{}, fmt.Errorf("no stored token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Claims{}, fmt.Errorf("parse token claims: %w", err)
	}

	out := Claims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
