package auth

import "golang.org/x/oauth2/clientcredentials"

// Auth modes.
const (
	ModeOAuth2 = "oauth2"
	ModeStatic = "static"
)

// Conf selects and configures the credential: the client-credentials flow
// against the backend's token endpoint, or a pre-issued static token.
type Conf struct {
	// Mode is "oauth2" or "static". Empty means oauth2.
	Mode         string `json:"mode"`
	Token        string `json:"token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURL      string `json:"auth_url"`
}

// NewCredential builds the credential the configuration describes.
func NewCredential(c Conf) Credential {
	if c.Mode == ModeStatic {
		return NewStaticToken(c.Token)
	}
	return NewClientCred(c)
}

func (c *Conf) toOauth2Config() clientcredentials.Config {
	return clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.AuthURL,
	}
}
