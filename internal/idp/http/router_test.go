package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	idphttp "github.com/aussiebroadwan/twitchauth/internal/idp/http"
	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store/drivers/sqlite"
	"github.com/aussiebroadwan/twitchauth/pkg/cryptox"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
	"github.com/aussiebroadwan/twitchauth/pkg/twitchauth"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "testclientid"
	testClientSecret = "testclientsecret"
)

func newRouter(t *testing.T, limits idphttp.Limits) *idphttp.Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher := cryptox.SecretHasher{}
	clients := &service.ClientService{Store: st, Hasher: hasher}
	require.NoError(t, clients.EnsureClient(context.Background(),
		testClientID, "test", testClientSecret, []string{"chat:read", "chat:edit"}))

	r := idphttp.NewRouter("test", st, limits, slogx.Discard())
	r.TokenService = &service.TokenService{Store: st, Hasher: hasher, AccessTTL: time.Hour}
	r.ApplyRoutes()
	return r
}

func do(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) twitchauth.ErrorResponse {
	t.Helper()

	var body twitchauth.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, rec.Code, body.Status)
	return body
}

func tokenURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return "/oauth2/token?" + q.Encode()
}

func issue(t *testing.T, h http.Handler, scope string) twitchauth.AppAccessToken {
	t.Helper()

	rec := do(t, h, http.MethodPost, tokenURL(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     testClientID,
		"client_secret": testClientSecret,
		"scope":         scope,
	}), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok twitchauth.AppAccessToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	return tok
}

func TestTokenEndpoint(t *testing.T) {
	t.Parallel()

	r := newRouter(t, idphttp.DefaultLimits())

	t.Run("issues a bearer token", func(t *testing.T) {
		rec := do(t, r, http.MethodPost, tokenURL(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     testClientID,
			"client_secret": testClientSecret,
			"scope":         "chat:read chat:edit",
		}), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var tok twitchauth.AppAccessToken
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
		require.Len(t, tok.AccessToken, cryptox.AccessTokenLength)
		require.Equal(t, 3600, tok.ExpiresIn)
		require.Equal(t, []string{"chat:read", "chat:edit"}, tok.Scope)
		require.Equal(t, "bearer", tok.TokenType)
	})

	t.Run("scope omitted when none requested", func(t *testing.T) {
		tok := issue(t, r, "")
		require.Nil(t, tok.Scope)
	})

	t.Run("form bodies are accepted", func(t *testing.T) {
		form := url.Values{
			"grant_type":    {"client_credentials"},
			"client_id":     {testClientID},
			"client_secret": {testClientSecret},
		}
		req := httptest.NewRequest(http.MethodPost, "/oauth2/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	failures := []struct {
		name    string
		params  map[string]string
		code    int
		message string
	}{
		{
			name:    "unsupported grant",
			params:  map[string]string{"grant_type": "password", "client_id": testClientID},
			code:    http.StatusBadRequest,
			message: "unsupported grant type",
		},
		{
			name:    "missing client id",
			params:  map[string]string{"grant_type": "client_credentials"},
			code:    http.StatusBadRequest,
			message: "missing client id",
		},
		{
			name:    "unknown client",
			params:  map[string]string{"grant_type": "client_credentials", "client_id": "nobody", "client_secret": "x"},
			code:    http.StatusBadRequest,
			message: "invalid client",
		},
		{
			name:    "wrong secret",
			params:  map[string]string{"grant_type": "client_credentials", "client_id": testClientID, "client_secret": "wrong"},
			code:    http.StatusForbidden,
			message: "invalid client secret",
		},
		{
			name: "scope not allowed",
			params: map[string]string{
				"grant_type": "client_credentials", "client_id": testClientID,
				"client_secret": testClientSecret, "scope": "chat:read bits:read",
			},
			code:    http.StatusBadRequest,
			message: "invalid scope requested: 'bits:read'",
		},
	}

	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, r, http.MethodPost, tokenURL(tc.params), nil)
			require.Equal(t, tc.code, rec.Code)
			require.Equal(t, tc.message, decodeStatus(t, rec).Message)
		})
	}

	t.Run("wrong method", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/oauth2/token", nil)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	r := newRouter(t, idphttp.DefaultLimits())
	tok := issue(t, r, "chat:read")

	for _, scheme := range []string{"OAuth", "Bearer", "oauth"} {
		t.Run("accepts "+scheme, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, "/oauth2/validate", http.Header{
				"Authorization": {scheme + " " + tok.AccessToken},
			})
			require.Equal(t, http.StatusOK, rec.Code)

			var v twitchauth.ValidatedToken
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
			require.Equal(t, testClientID, v.ClientID)
			require.Equal(t, []string{"chat:read"}, v.Scopes)
			require.Empty(t, v.Login)
			require.Empty(t, v.UserID)
			require.InDelta(t, 3600, v.ExpiresIn, 5)
		})
	}

	t.Run("scopes are an empty list, not null", func(t *testing.T) {
		bare := issue(t, r, "")
		rec := do(t, r, http.MethodGet, "/oauth2/validate", http.Header{
			"Authorization": {"OAuth " + bare.AccessToken},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"scopes":[]`)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/oauth2/validate", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "missing authorization token", decodeStatus(t, rec).Message)
	})

	t.Run("unknown token", func(t *testing.T) {
		rec := do(t, r, http.MethodGet, "/oauth2/validate", http.Header{
			"Authorization": {"OAuth nope"},
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid access token", decodeStatus(t, rec).Message)
	})
}

func TestValidateUsesServiceClock(t *testing.T) {
	t.Parallel()

	r := newRouter(t, idphttp.DefaultLimits())
	tok := issue(t, r, "chat:read")

	later := time.Now().Add(45 * time.Minute)
	r.TokenService.Now = func() time.Time { return later }

	rec := do(t, r, http.MethodGet, "/oauth2/validate", http.Header{
		"Authorization": {"OAuth " + tok.AccessToken},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var v twitchauth.ValidatedToken
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	require.InDelta(t, 15*60, v.ExpiresIn, 5)
}

func TestRevokeEndpoint(t *testing.T) {
	t.Parallel()

	r := newRouter(t, idphttp.DefaultLimits())
	tok := issue(t, r, "")

	revoke := func(token, clientID string) *httptest.ResponseRecorder {
		q := url.Values{}
		if token != "" {
			q.Set("token", token)
		}
		if clientID != "" {
			q.Set("client_id", clientID)
		}
		return do(t, r, http.MethodPost, "/oauth2/revoke?"+q.Encode(), nil)
	}

	rec := revoke("", testClientID)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing token", decodeStatus(t, rec).Message)

	rec = revoke(tok.AccessToken, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "missing client id", decodeStatus(t, rec).Message)

	rec = revoke(tok.AccessToken, "nobody")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "client does not exist", decodeStatus(t, rec).Message)

	rec = revoke("unknown", testClientID)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid token", decodeStatus(t, rec).Message)

	rec = revoke(tok.AccessToken, testClientID)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = revoke(tok.AccessToken, testClientID)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/oauth2/validate", http.Header{
		"Authorization": {"OAuth " + tok.AccessToken},
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	r := newRouter(t, idphttp.DefaultLimits())

	for _, path := range []string{"/livez", "/readyz"} {
		rec := do(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		require.NotEmpty(t, rec.Header().Get(slogx.RequestIDHeader))

		var body idphttp.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "ok", body.Status)
		require.Equal(t, "test", body.Version)
	}
}

func TestSwaggerDocs(t *testing.T) {
	t.Parallel()

	r := newRouter(t, idphttp.DefaultLimits())
	rec := do(t, r, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/oauth2/validate")
}

func TestSwaggerRateLimit(t *testing.T) {
	t.Parallel()

	limits := idphttp.DefaultLimits()
	limits.Health = httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}
	r := newRouter(t, limits)

	require.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/swagger/doc.json", nil).Code)
	require.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodGet, "/swagger/doc.json", nil).Code)
}

func TestTokenRateLimit(t *testing.T) {
	t.Parallel()

	limits := idphttp.DefaultLimits()
	limits.Token = httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}
	r := newRouter(t, limits)

	target := tokenURL(map[string]string{"grant_type": "client_credentials", "client_id": "nobody"})
	require.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, target, nil).Code)

	rec := do(t, r, http.MethodPost, target, nil)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "Too Many Requests", decodeStatus(t, rec).Message)
}

// The client package against the provider, over a real listener.
func TestClientRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newRouter(t, idphttp.DefaultLimits()))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	c := twitchauth.NewClient(twitchauth.WithBaseURL(srv.URL + "/oauth2"))

	tok, err := c.GetAppAccessToken(ctx, testClientID, testClientSecret, []string{"chat:read", "chat:edit"})
	require.NoError(t, err)
	require.Equal(t, []string{"chat:read", "chat:edit"}, tok.Scope)

	v, err := c.ValidateToken(ctx, *tok)
	require.NoError(t, err)
	require.Equal(t, testClientID, v.ClientID)
	require.True(t, v.HasScope("chat:edit"))

	require.NoError(t, c.RevokeToken(ctx, *tok, testClientID))

	_, err = c.ValidateToken(ctx, *tok)
	require.ErrorIs(t, err, twitchauth.ErrStatus)
	require.Equal(t, http.StatusUnauthorized, twitchauth.StatusCode(err))

	_, err = c.GetAppAccessToken(ctx, testClientID, "wrong-secret", nil)
	var apiErr *twitchauth.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, twitchauth.KindStatus, apiErr.Kind)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, "invalid client secret", apiErr.Message)
	require.NotContains(t, err.Error(), "wrong-secret")
}
