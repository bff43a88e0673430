package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
	"github.com/aussiebroadwan/twitchauth/pkg/twitchauth"
)

// ValidateHandler serves GET /oauth2/validate.
type ValidateHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Validate Token
//	@Description	Reports the client, scopes and remaining lifetime of a live access token.
//	@Description	App access tokens carry no login or user_id.
//	@Tags			OAuth2
//	@Produce		json
//	@Param			Authorization	header		string						true	"OAuth {token}"
//	@Success		200				{object}	twitchauth.ValidatedToken	"client_id, scopes, expires_in"
//	@Failure		401				{object}	twitchauth.ErrorResponse	"status, message"
//	@Failure		429				{object}	twitchauth.ErrorResponse	"status, message"
//	@Router			/oauth2/validate [get].
func (h *ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw, err := httpx.AuthorizationToken(r, "OAuth", "Bearer")
	if err != nil {
		httpx.WriteStatus(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	tok, err := h.TokenService.Validate(ctx, raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			httpx.WriteStatus(w, http.StatusUnauthorized, "invalid access token")
			return
		}
		slogx.FromContext(ctx).Error("token validation failed", "err", err)
		httpx.WriteStatus(w, http.StatusInternalServerError, "internal server error")
		return
	}

	scopes := tok.Scopes
	if scopes == nil {
		scopes = []string{}
	}

	httpx.WriteJSON(w, http.StatusOK, twitchauth.ValidatedToken{
		ClientID:  tok.ClientID,
		Scopes:    scopes,
		ExpiresIn: tok.ExpiresIn(h.TokenService.Clock()),
	})
}
