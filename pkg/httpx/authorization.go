package httpx

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNoCredentials is returned when the Authorization header is absent.
	ErrNoCredentials = errors.New("httpx: missing authorization header")

	// ErrUnsupportedScheme is returned when the header uses a scheme the
	// caller did not accept.
	ErrUnsupportedScheme = errors.New("httpx: unsupported authorization scheme")
)

// AuthorizationToken extracts the credential from an Authorization header of
// the form "<scheme> <token>". Scheme matching is case-insensitive.
func AuthorizationToken(r *http.Request, schemes ...string) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrNoCredentials
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok {
		return "", ErrUnsupportedScheme
	}

	token = strings.TrimSpace(token)
	for _, s := range schemes {
		if strings.EqualFold(scheme, s) {
			if token == "" {
				return "", ErrNoCredentials
			}
			return token, nil
		}
	}
	return "", ErrUnsupportedScheme
}
