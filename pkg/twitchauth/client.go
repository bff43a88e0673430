package twitchauth

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Twitch identity provider OAuth2 root.
const DefaultBaseURL = "https://id.twitch.tv/oauth2"

// Client talks to a Twitch compatible identity provider. A Client holds no
// mutable state and is safe for concurrent use.
type Client struct {
	// BaseURL is the OAuth2 root; endpoints are BaseURL+"/token" and so on.
	// Empty means DefaultBaseURL.
	BaseURL string

	// HTTPClient performs the requests. Its Timeout is zero unless the
	// caller sets one, so cancellation is governed by the request context.
	// Nil means http.DefaultClient.
	HTTPClient *http.Client

	// Logger receives debug lines per request. When nil the logger on the
	// request context is used.
	Logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another identity provider, e.g. a local
// stand-in during development.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.BaseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient replaces the transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout bounds each request. Without it requests only end when the
// server answers or the context is done.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		var hc http.Client
		if c.HTTPClient != nil {
			hc = *c.HTTPClient
		}
		hc.Timeout = d
		c.HTTPClient = &hc
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// NewClient returns a Client for DefaultBaseURL with a fresh http.Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return c
}
