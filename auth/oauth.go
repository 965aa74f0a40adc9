package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCred obtains tokens through the OAuth2 client-credentials flow and
// refreshes them transparently when they expire. Safe for concurrent use:
// parallel requests share one cached token and at most one of them hits the
// token endpoint.
type ClientCred struct {
	conf clientcredentials.Config

	mu    sync.Mutex
	token *oauth2.Token
}

// NewClientCred creates a credential from the client-credentials settings.
func NewClientCred(conf Conf) *ClientCred {
	return &ClientCred{conf: conf.toOauth2Config()}
}

// GetToken retrieves a valid access token, requesting a new one only when the
// cached token has expired.
func (c *ClientCred) GetToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != nil && c.token.Valid() {
		return c.token.AccessToken, nil
	}
	if err := c.getTokenLocked(); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// getTokenLocked requests a fresh token. Callers must hold c.mu.
func (c *ClientCred) getTokenLocked() error {
	tok, err := c.conf.Token(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get token: %w", err)
	}
	c.token = tok
	return nil
}

// ForceRefresh discards the cached token and requests a fresh one.
func (c *ClientCred) ForceRefresh() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.getTokenLocked(); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// Valid reports whether the credential can produce tokens. Configuration is
// the only local check; token requests may still fail at the endpoint.
func (c *ClientCred) Valid() bool {
	return c.conf.ClientID != "" && c.conf.TokenURL != ""
}

// SetAuthHeader attaches a valid bearer token, refreshing it if needed.
func (c *ClientCred) SetAuthHeader(r *http.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != nil && c.token.Valid() {
		c.token.SetAuthHeader(r)
		return nil
	}
	if err := c.getTokenLocked(); err != nil {
		return err
	}
	c.token.SetAuthHeader(r)
	return nil
}
