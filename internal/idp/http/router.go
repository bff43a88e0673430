package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/twitchauth/internal/idp/service"
	"github.com/aussiebroadwan/twitchauth/internal/idp/store"
	"github.com/aussiebroadwan/twitchauth/pkg/httpx"
	"github.com/aussiebroadwan/twitchauth/pkg/slogx"

	_ "github.com/aussiebroadwan/twitchauth/api/idp" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits groups the rate limit profiles applied per route family.
type Limits struct {
	Token    httpx.RateLimitConfig
	Validate httpx.RateLimitConfig
	Health   httpx.RateLimitConfig
}

// DefaultLimits returns the package defaults from httpx.
func DefaultLimits() Limits {
	return Limits{
		Token:    httpx.TokenLimit,
		Validate: httpx.ValidateLimit,
		Health:   httpx.HealthLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       Limits

	store        store.Store
	TokenService *service.TokenService
}

func NewRouter(buildVersion string, st store.Store, limits Limits, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		limits:       limits,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(r.limits.Health),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Twitch OAuth2 Development Identity Provider
//	@version		0.1.0
//	@description	Local stand-in for id.twitch.tv serving the app access token endpoints.
//	@description
//	@description	Errors use the Twitch shape {"status": N, "message": "..."}.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/twitchauth
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	// POST /token - strict, keyed by IP and client so one bad client cannot
	// starve another behind the same NAT
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /oauth2/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIPAndField(r.limits.Token, "client_id"),
		),
	)

	validateHandler := &ValidateHandler{TokenService: r.TokenService}
	r.Mux.Handle("GET /oauth2/validate",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(r.limits.Validate),
		),
	)

	revokeHandler := &RevokeHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /oauth2/revoke",
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(r.limits.Validate),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Health),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.limits.Health),
		),
	)
}
