package spapi

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// Credentials are the LWA application credentials. Both fields are required
// before any upstream call is attempted.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Validate fails fast when a secret is absent (ConfigurationMissing).
func (c Credentials) Validate() error {
	if c.ClientID == "" {
		return errors.New("spapi: LWA client id is not configured")
	}
	if c.ClientSecret == "" {
		return errors.New("spapi: LWA client secret is not configured")
	}
	return nil
}

// TokenSource builds an oauth2 token source performing the LWA refresh-token
// grant for one stored connection. Access tokens are cached by the oauth2
// package for their lifetime; callers may hold the source per request without
// affecting correctness.
func (c Credentials) TokenSource(ctx context.Context, refreshToken string) oauth2.TokenSource {
	conf := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  LWATokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
}

// Exchange swaps an OAuth authorization code for its token pair, used when a
// seller first connects. The returned token carries the refresh token to
// persist.
func (c Credentials) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	conf := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  redirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  LWATokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return conf.Exchange(ctx, code)
}
