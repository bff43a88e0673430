package twitchauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
)

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// endpoint joins the base URL, path and query. An empty BaseURL means
// DefaultBaseURL.
func (c *Client) endpoint(path string, query url.Values) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends a single request and returns the body of a 2xx answer. Any other
// outcome is an *Error of the matching kind.
func (c *Client) do(ctx context.Context, op string, req *http.Request) ([]byte, error) {
	log := c.Logger
	if log == nil {
		log = slogx.FromContext(ctx)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.DebugContext(ctx, "twitchauth request failed",
			"op", op,
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	log.DebugContext(ctx, "twitchauth request",
		"op", op,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody ErrorResponse
		_ = json.Unmarshal(body, &errBody)
		return nil, statusError(op, resp.StatusCode, errBody)
	}

	if err != nil {
		return nil, transportError(op, err)
	}
	return body, nil
}

// decodeJSON unmarshals a 2xx body into target.
func decodeJSON(op string, body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return decodeError(op, err)
	}
	return nil
}
