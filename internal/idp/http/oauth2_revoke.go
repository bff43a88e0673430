package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"
)

// RevokeHandler serves POST /oauth2/revoke. Revoking an already revoked
// token of the same client succeeds.
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Revoke Token
//	@Description	Revokes an access token issued to client_id. The response body is empty.
//	@Tags			OAuth2
//	@Produce		json
//	@Param			token		query	string	true	"Access token to revoke"
//	@Param			client_id	query	string	true	"Client the token was issued to"
//	@Success		200			"Token revoked"
//	@Failure		400			{object}	twitchauth.ErrorResponse	"status, message"
//	@Failure		404			{object}	twitchauth.ErrorResponse	"status, message"
//	@Failure		429			{object}	twitchauth.ErrorResponse	"status, message"
//	@Router			/oauth2/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest, "invalid request")
		return
	}

	token := strings.TrimSpace(r.Form.Get("token"))
	clientID := strings.TrimSpace(r.Form.Get("client_id"))

	switch {
	case token == "":
		httpx.WriteStatus(w, http.StatusBadRequest, "missing token")
		return
	case clientID == "":
		httpx.WriteStatus(w, http.StatusBadRequest, "missing client id")
		return
	}

	if err := h.TokenService.Revoke(ctx, token, clientID); err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			httpx.WriteStatus(w, http.StatusNotFound, "client does not exist")
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenMismatch):
			httpx.WriteStatus(w, http.StatusBadRequest, "Invalid token")
		default:
			log.Error("token revocation failed", "err", err)
			httpx.WriteStatus(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
}
