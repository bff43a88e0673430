package twitchauth

import (
	"context"
	"net/http"
	"net/url"
)

// RevokeToken invalidates token for clientID.
func (c *Client) RevokeToken(ctx context.Context, token AppAccessToken, clientID string) error {
	return c.RevokeAccessToken(ctx, token.AccessToken, clientID)
}

// RevokeAccessToken revokes a raw access token string. Parameters travel in
// the query of a POST; any 2xx is success and the body is ignored.
func (c *Client) RevokeAccessToken(ctx context.Context, accessToken, clientID string) error {
	query := url.Values{
		"token":     {accessToken},
		"client_id": {clientID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/revoke", query), nil)
	if err != nil {
		return transportError(OpRevoke, err)
	}

	_, err = c.do(ctx, OpRevoke, req)
	return err
}
