// Package auth provides the bearer credential attached to every backend
// request. Without a credential the console performs no reads at all.
package auth

import (
	"errors"
	"net/http"
	"sync"
)

// ErrNoCredential is returned when a request is attempted with no credential
// configured or after the credential has been cleared.
var ErrNoCredential = errors.New("auth: no credential available")

// Credential sets the Authorization header on outgoing requests. Valid
// reports whether the credential can still produce tokens; the session stops
// polling when it turns false.
type Credential interface {
	SetAuthHeader(r *http.Request) error
	Valid() bool
}

// StaticToken is a fixed bearer token, typically issued by the login flow and
// handed to the console at startup. Clear revokes it for the session.
type StaticToken struct {
	mu    sync.RWMutex
	token string
}

// NewStaticToken creates a credential from an existing access token.
func NewStaticToken(token string) *StaticToken {
	return &StaticToken{token: token}
}

// SetAuthHeader attaches the bearer token.
func (s *StaticToken) SetAuthHeader(r *http.Request) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ErrNoCredential
	}
	r.Header.Set("Authorization", "Bearer "+s.token)
	return nil
}

// Clear drops the token. Subsequent requests fail with ErrNoCredential.
func (s *StaticToken) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Valid reports whether a token is currently held.
func (s *StaticToken) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}
