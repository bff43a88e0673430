package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
	"github.com/aussiebroadwan/twitchauth/pkg/twitchauth"
)

const grantClientCredentials = "client_credentials"

// TokenHandler serves POST /oauth2/token. Parameters are read from the query
// string like Twitch does, with form bodies accepted as well.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		App Access Token
//	@Description	Issues an app access token using the client_credentials grant.
//	@Tags			OAuth2
//	@Produce		json
//	@Param			grant_type		query		string						true	"Grant type"	Enums(client_credentials)
//	@Param			client_id		query		string						true	"Client identifier"
//	@Param			client_secret	query		string						true	"Client secret"
//	@Param			scope			query		string						false	"Space-delimited list of scopes"
//	@Success		200				{object}	twitchauth.AppAccessToken	"access_token, expires_in, scope, token_type"
//	@Failure		400				{object}	twitchauth.ErrorResponse	"status, message"
//	@Failure		403				{object}	twitchauth.ErrorResponse	"status, message"
//	@Failure		429				{object}	twitchauth.ErrorResponse	"status, message"
//	@Failure		500				{object}	twitchauth.ErrorResponse	"status, message"
//	@Header			200				{string}	Cache-Control				"no-store"
//	@Router			/oauth2/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		httpx.WriteStatus(w, http.StatusBadRequest, "invalid content type")
		return
	}
	if err := r.ParseForm(); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest, "invalid request")
		return
	}

	if r.Form.Get("grant_type") != grantClientCredentials {
		httpx.WriteStatus(w, http.StatusBadRequest, "unsupported grant type")
		return
	}

	clientID := strings.TrimSpace(r.Form.Get("client_id"))
	if clientID == "" {
		httpx.WriteStatus(w, http.StatusBadRequest, "missing client id")
		return
	}
	secret := r.Form.Get("client_secret")
	scopes := httpx.ParseSpaceDelimitedFields(r.Form.Get("scope"))

	issued, err := h.TokenService.IssueAppAccessToken(ctx, clientID, secret, scopes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClient):
			httpx.WriteStatus(w, http.StatusBadRequest, "invalid client")
		case errors.Is(err, service.ErrInvalidSecret):
			httpx.WriteStatus(w, http.StatusForbidden, "invalid client secret")
		case errors.Is(err, service.ErrInvalidScope):
			httpx.WriteStatus(w, http.StatusBadRequest, err.Error())
		default:
			log.Error("client_credentials grant failed", "err", err)
			httpx.WriteStatus(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, twitchauth.AppAccessToken{
		AccessToken: issued.AccessToken,
		ExpiresIn:   issued.ExpiresIn,
		Scope:       issued.Scopes,
		TokenType:   issued.TokenType,
	})
}
