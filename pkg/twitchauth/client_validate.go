package twitchauth

import (
	"context"
	"net/http"
)

// ValidateToken asks the identity provider whether token is still valid.
func (c *Client) ValidateToken(ctx context.Context, token AppAccessToken) (*ValidatedToken, error) {
	return c.ValidateAccessToken(ctx, token.AccessToken)
}

// ValidateAccessToken validates a raw access token string. The token travels
// as "Authorization: OAuth <token>".
func (c *Client) ValidateAccessToken(ctx context.Context, accessToken string) (*ValidatedToken, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/validate", nil), nil)
	if err != nil {
		return nil, transportError(OpValidate, err)
	}
	req.Header.Set("Authorization", "OAuth "+accessToken)

	body, err := c.do(ctx, OpValidate, req)
	if err != nil {
		return nil, err
	}

	var v ValidatedToken
	if err := decodeJSON(OpValidate, body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
