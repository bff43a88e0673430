package twitchauth

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// AppAccessToken is an application credential issued by the client
// credentials grant. The caller owns its storage and expiry tracking.
type AppAccessToken struct {
	// AccessToken is the opaque credential.
	AccessToken string `json:"access_token"`

	// ExpiresIn is the lifetime in seconds, relative to issuance.
	ExpiresIn int `json:"expires_in"`

	// Scope lists the granted scopes. Nil when the server sent none.
	Scope []string `json:"scope,omitempty"`

	// TokenType is "bearer" for Twitch.
	TokenType string `json:"token_type"`
}

// ExpiresAt converts ExpiresIn into an absolute time given when the token
// was issued.
func (t AppAccessToken) ExpiresAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

func (t *AppAccessToken) UnmarshalJSON(b []byte) error {
	var raw struct {
		AccessToken *string  `json:"access_token"`
		ExpiresIn   *int     `json:"expires_in"`
		Scope       []string `json:"scope"`
		TokenType   *string  `json:"token_type"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.AccessToken == nil:
		return missingField("access_token")
	case raw.ExpiresIn == nil:
		return missingField("expires_in")
	case raw.TokenType == nil:
		return missingField("token_type")
	case *raw.ExpiresIn < 0:
		return fmt.Errorf("expires_in is negative: %d", *raw.ExpiresIn)
	}

	*t = AppAccessToken{
		AccessToken: *raw.AccessToken,
		ExpiresIn:   *raw.ExpiresIn,
		Scope:       raw.Scope,
		TokenType:   *raw.TokenType,
	}
	return nil
}

// ValidatedToken describes a token the identity provider still accepts.
type ValidatedToken struct {
	ClientID string `json:"client_id"`

	// Login and UserID are empty for app access tokens.
	Login  string `json:"login,omitempty"`
	UserID string `json:"user_id,omitempty"`

	Scopes []string `json:"scopes"`

	// ExpiresIn is the remaining lifetime in seconds, 0 when not reported.
	ExpiresIn int `json:"expires_in,omitempty"`
}

// HasScope reports whether scope was granted.
func (v ValidatedToken) HasScope(scope string) bool {
	return slices.Contains(v.Scopes, scope)
}

func (v *ValidatedToken) UnmarshalJSON(b []byte) error {
	var raw struct {
		ClientID  *string  `json:"client_id"`
		Login     *string  `json:"login"`
		UserID    *string  `json:"user_id"`
		Scopes    []string `json:"scopes"`
		ExpiresIn *int     `json:"expires_in"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.ClientID == nil {
		return missingField("client_id")
	}

	*v = ValidatedToken{
		ClientID: *raw.ClientID,
		Login:    deref(raw.Login),
		UserID:   deref(raw.UserID),
		Scopes:   raw.Scopes,
	}
	if raw.ExpiresIn != nil {
		v.ExpiresIn = *raw.ExpiresIn
	}
	return nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
