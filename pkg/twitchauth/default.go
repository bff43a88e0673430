package twitchauth

import "context"

// The package level functions build a new Client, and so a new transport,
// for every call. Long lived callers should keep a Client instead.

// GetAppAccessToken is Client.GetAppAccessToken on a fresh Client.
func GetAppAccessToken(
	ctx context.Context,
	clientID, clientSecret string,
	scopes []string,
	opts ...Option,
) (*AppAccessToken, error) {
	return NewClient(opts...).GetAppAccessToken(ctx, clientID, clientSecret, scopes)
}

// ValidateToken is Client.ValidateToken on a fresh Client.
func ValidateToken(ctx context.Context, token AppAccessToken, opts ...Option) (*ValidatedToken, error) {
	return NewClient(opts...).ValidateToken(ctx, token)
}

// RevokeToken is Client.RevokeToken on a fresh Client.
func RevokeToken(ctx context.Context, token AppAccessToken, clientID string, opts ...Option) error {
	return NewClient(opts...).RevokeToken(ctx, token, clientID)
}
