package app

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "github.com/aussiebroadwan/twitchauth/internal/idp/http"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/twitchauth"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("IDP_CLIENT_ID", "abc")
	t.Setenv("IDP_CLIENT_SECRET", "shh")
	t.Setenv("IDP_CLIENT_SCOPES", "chat:read  chat:edit")
	t.Setenv("IDP_TOKEN_TTL", "120")
	t.Setenv("HOUSEKEEPING_INTERVAL", "5m")
	t.Setenv("RATELIMIT_TOKEN_BURST", "3")

	cfg := LoadConfig()
	require.Equal(t, "abc", cfg.Seed.ID)
	require.Equal(t, "dev-client", cfg.Seed.Name)
	require.Equal(t, []string{"chat:read", "chat:edit"}, cfg.Seed.Scopes)
	require.Equal(t, 2*time.Minute, cfg.TokenTTL)
	require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 3, cfg.Limits.Token.Burst)
	require.Equal(t, httpx.ValidateLimit, cfg.Limits.Validate)
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := Config{TokenTTL: time.Hour, Seed: SeedClient{ID: "abc"}}
	require.Error(t, cfg.Validate())

	cfg.Seed = SeedClient{}
	require.NoError(t, cfg.Validate())

	cfg.TokenTTL = 0
	require.Error(t, cfg.Validate())
}

func testConfig() Config {
	return Config{
		DatabaseDSN:          ":memory:",
		TokenTTL:             time.Hour,
		Seed:                 SeedClient{Name: "dev-client", Scopes: []string{"chat:read"}},
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
		Limits:               httpapi.DefaultLimits(),
	}
}

func TestGeneratedClient(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()
	cfg.Stdout = &out

	application, err := New(cfg)
	require.NoError(t, err)

	creds := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok)
		creds[k] = v
	}
	require.Len(t, creds["TWITCH_CLIENT_ID"], 30)
	require.Len(t, creds["TWITCH_CLIENT_SECRET"], 30)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	opt := twitchauth.WithBaseURL(srv.URL + "/oauth2")

	tok, err := twitchauth.GetAppAccessToken(ctx, creds["TWITCH_CLIENT_ID"], creds["TWITCH_CLIENT_SECRET"], []string{"chat:read"}, opt)
	require.NoError(t, err)

	v, err := twitchauth.ValidateToken(ctx, *tok, opt)
	require.NoError(t, err)
	require.Equal(t, creds["TWITCH_CLIENT_ID"], v.ClientID)

	require.NoError(t, application.Shutdown())
}

func TestSeededClient(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()
	cfg.Stdout = &out
	cfg.Seed = SeedClient{ID: "seeded", Secret: "seeded-secret", Name: "seeded", Scopes: []string{"chat:edit"}}

	application, err := New(cfg)
	require.NoError(t, err)
	require.Empty(t, out.String())

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	c := twitchauth.NewClient(twitchauth.WithBaseURL(srv.URL + "/oauth2"))
	tok, err := c.GetAppAccessToken(context.Background(), "seeded", "seeded-secret", []string{"chat:edit"})
	require.NoError(t, err)
	require.Equal(t, 3600, tok.ExpiresIn)

	require.NoError(t, application.Shutdown())
}

func TestShutdownBeforeRun(t *testing.T) {
	cfg := testConfig()
	cfg.Stdout = &bytes.Buffer{}

	application, err := New(cfg)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- application.Shutdown() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown blocked")
	}
}
