//go:build e2e

package idp_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/twitchauth/pkg/twitchauth"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupIdPContainer(t, nil)

	require.Equal(t, http.StatusOK, getJSONStatus(t, baseURL+"/livez"))
	require.Equal(t, http.StatusOK, getJSONStatus(t, baseURL+"/readyz"))
	require.Equal(t, http.StatusOK, getJSONStatus(t, baseURL+"/swagger/doc.json"))
}

// TestTokenLifecycle walks issue, validate, revoke and validate again.
func TestTokenLifecycle(t *testing.T) {
	baseURL := setupIdPContainer(t, nil)
	client := newClient(baseURL)
	ctx := t.Context()

	tok, err := client.GetAppAccessToken(ctx, seedClientID, seedClientSecret, seedScopes)
	require.NoError(t, err)
	require.Len(t, tok.AccessToken, 30)
	require.Equal(t, 3600, tok.ExpiresIn)
	require.Equal(t, "bearer", tok.TokenType)
	require.ElementsMatch(t, seedScopes, tok.Scope)

	v, err := client.ValidateToken(ctx, *tok)
	require.NoError(t, err)
	require.Equal(t, seedClientID, v.ClientID)
	require.ElementsMatch(t, seedScopes, v.Scopes)
	require.Empty(t, v.Login)
	require.Empty(t, v.UserID)
	require.Positive(t, v.ExpiresIn)

	require.NoError(t, client.RevokeToken(ctx, *tok, seedClientID))
	require.NoError(t, client.RevokeToken(ctx, *tok, seedClientID), "revoke is idempotent")

	_, err = client.ValidateToken(ctx, *tok)
	assertStatus(t, err, http.StatusUnauthorized, "invalid access token")
}

func TestTokenErrors(t *testing.T) {
	baseURL := setupIdPContainer(t, nil)
	client := newClient(baseURL)
	ctx := t.Context()

	t.Run("unknown client", func(t *testing.T) {
		_, err := client.GetAppAccessToken(ctx, "nobody", seedClientSecret, nil)
		assertStatus(t, err, http.StatusBadRequest, "invalid client")
	})

	t.Run("wrong secret is not echoed", func(t *testing.T) {
		_, err := client.GetAppAccessToken(ctx, seedClientID, "definitely-wrong", nil)
		assertStatus(t, err, http.StatusForbidden, "invalid client secret")
		require.NotContains(t, err.Error(), "definitely-wrong")
	})

	t.Run("scope outside the client", func(t *testing.T) {
		_, err := client.GetAppAccessToken(ctx, seedClientID, seedClientSecret, []string{"bits:read"})
		assertStatus(t, err, http.StatusBadRequest, "invalid scope requested: 'bits:read'")
	})

	t.Run("revoke for unknown client", func(t *testing.T) {
		err := client.RevokeAccessToken(ctx, "whatever", "nobody")
		assertStatus(t, err, http.StatusNotFound, "client does not exist")
	})

	t.Run("revoke unknown token", func(t *testing.T) {
		err := client.RevokeAccessToken(ctx, "whatever", seedClientID)
		assertStatus(t, err, http.StatusBadRequest, "Invalid token")
	})
}

// TestTokenRateLimit shrinks the token profile so the limit trips quickly.
func TestTokenRateLimit(t *testing.T) {
	baseURL := setupIdPContainer(t, map[string]string{
		"RATELIMIT_TOKEN_REQUESTS": "5",
		"RATELIMIT_TOKEN_BURST":    "5",
	})
	client := newClient(baseURL)

	var limited error
	for range 20 {
		_, err := client.GetAppAccessToken(t.Context(), seedClientID, "wrong", nil)
		if twitchauth.StatusCode(err) == http.StatusTooManyRequests {
			limited = err
			break
		}
	}
	require.Error(t, limited, "expected a 429 within 20 attempts")
	assertStatus(t, limited, http.StatusTooManyRequests, "Too Many Requests")
}
