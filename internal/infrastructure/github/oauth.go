package github

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/folio-inc/folio/internal/shared/errors"
)

// ErrNoAccessToken marks a token response that carried no access token.
var ErrNoAccessToken = errors.ErrNoAccessToken

// Exchanger swaps an authorization code for an access token. Credentials are
// passed per call because each account may carry its own OAuth app override.
type Exchanger struct {
	authURL  string
	tokenURL string
}

// NewExchanger creates an Exchanger against the given OAuth base URL, e.g.
// https://github.com/login/oauth.
func NewExchanger(oauthBaseURL string) *Exchanger {
	return &Exchanger{
		authURL:  oauthBaseURL + "/authorize",
		tokenURL: oauthBaseURL + "/access_token",
	}
}

// Exchange redeems the authorization code. A provider rejection surfaces as a
// RemoteError, a syntactically valid but tokenless response as
// ErrNoAccessToken, and anything else as a transport error.
func (e *Exchanger) Exchange(ctx context.Context, clientID, clientSecret, code string) (string, error) {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  e.authURL,
			TokenURL: e.tokenURL,
		},
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if stderrors.As(err, &retrieveErr) {
			return "", errors.NewRemoteError(retrieveErr.Response.StatusCode, string(retrieveErr.Body))
		}
		// The oauth2 package reports a tokenless 200 response as a plain
		// error rather than a RetrieveError.
		if strings.Contains(err.Error(), "missing access_token") {
			return "", ErrNoAccessToken
		}
		return "", fmt.Errorf("token exchange failed: %w", err)
	}

	if token.AccessToken == "" {
		return "", ErrNoAccessToken
	}

	return token.AccessToken, nil
}
