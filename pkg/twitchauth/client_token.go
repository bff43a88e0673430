package twitchauth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// GetAppAccessToken requests an app access token with the client credentials
// grant. Scopes are sent space separated; the scope parameter is always
// present, empty when scopes is empty. One attempt, no retry.
func (c *Client) GetAppAccessToken(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
) (*AppAccessToken, error) {
	query := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"scope":         {strings.Join(scopes, " ")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/token", query), nil)
	if err != nil {
		return nil, transportError(OpToken, err)
	}

	body, err := c.do(ctx, OpToken, req)
	if err != nil {
		return nil, err
	}

	var tok AppAccessToken
	if err := decodeJSON(OpToken, body, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
