// Package session holds the process-wide authentication state: the
// bearer token and the signed-in user. The store is the only shared
// mutable state in the console and is mutated exclusively through
// SetCredentials and Logout.
package session

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"backoffice/models"
)

// Store is an injectable session holder. The zero value is usable but
// persists nothing; use New to get token persistence.
type Store struct {
	mu        sync.RWMutex
	tokenFile string
	token     string
	user      *models.User
}

// New creates a store backed by tokenFile. If the file holds a token
// from an earlier run, the session starts authenticated with a nil user
// until the next login or authenticated fetch reconfirms it. No
// validation call is made at init.
func New(tokenFile string) *Store {
	s := &Store{tokenFile: tokenFile}
	if tokenFile == "" {
		return s
	}
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return s
	}
	s.token = strings.TrimSpace(string(data))
	return s
}

// SetCredentials records a successful login and persists the token.
func (s *Store) SetCredentials(user models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
	if s.tokenFile == "" {
		return nil
	}
	return os.WriteFile(s.tokenFile, []byte(token), 0o600)
}

// Logout clears the session and the persisted token. Safe to call when
// already logged out.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	if s.tokenFile == "" {
		return
	}
	if err := os.Remove(s.tokenFile); err != nil && !os.IsNotExist(err) {
		log.Printf("Error removing token file: %v", err)
	}
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// CurrentUser returns the signed-in user, or nil when unknown (logged
// out, or a restored session that has not been reconfirmed yet).
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// ExpiresAt returns the expiry claim of the held token without
// verifying its signature, so the console can warn about stale sessions
// before making a request. Zero time when no token is held or the token
// carries no expiry.
func (s *Store) ExpiresAt() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}
	var claims models.JwtClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
