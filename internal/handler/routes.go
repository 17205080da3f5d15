package handler

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/security/auth"
	"github.com/yourorg/recruitdesk/internal/security/middleware"
	"github.com/yourorg/recruitdesk/internal/security/ratelimit"
)

// RouterConfig carries everything the HTTP surface needs. Feed is optional;
// when nil the WebSocket route is not registered.
type RouterConfig struct {
	Auth       *AuthHandler
	Users      *UserHandler
	Positions  *PositionHandler
	Applicants *ApplicantHandler
	Health     *HealthHandler
	Feed       *FeedHandler

	Tokens *auth.TokenManager

	// AuthLimiter throttles the credential endpoints; APILimiter covers the
	// rest of the API. Either may be nil.
	AuthLimiter ratelimit.Limiter
	APILimiter  ratelimit.Limiter

	Logger *slog.Logger
}

// NewRouter builds the route table. Authentication and role checks are
// attached per route: the public routes are exactly registration, login, the
// applicant submission, the health probes, and /metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	authn := middleware.Authenticate(cfg.Tokens, log)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	hiring := middleware.RequireRoles(domain.RoleAdmin, domain.RoleRecruiter)

	limit := func(l ratelimit.Limiter, h http.Handler) http.Handler {
		if l == nil {
			return h
		}
		return middleware.RateLimit(l, log)(h)
	}
	public := func(l ratelimit.Limiter, h http.HandlerFunc) http.Handler {
		return limit(l, h)
	}
	protected := func(h http.HandlerFunc, roleGates ...func(http.Handler) http.Handler) http.Handler {
		var wrapped http.Handler = h
		for i := len(roleGates) - 1; i >= 0; i-- {
			wrapped = roleGates[i](wrapped)
		}
		return authn(limit(cfg.APILimiter, wrapped))
	}

	mux := http.NewServeMux()

	mux.Handle("POST /api/auth/register", public(cfg.AuthLimiter, cfg.Auth.Register))
	mux.Handle("POST /api/auth/login", public(cfg.AuthLimiter, cfg.Auth.Login))
	mux.Handle("GET /api/auth/me", protected(cfg.Auth.Me))
	mux.Handle("POST /api/auth/logout", protected(cfg.Auth.Logout))

	mux.Handle("POST /api/users", protected(cfg.Users.Create, adminOnly))
	mux.Handle("GET /api/users", protected(cfg.Users.List))
	mux.Handle("GET /api/users/{id}", protected(cfg.Users.Get))
	mux.Handle("DELETE /api/users/{id}", protected(cfg.Users.Delete, adminOnly))

	mux.Handle("POST /api/positions", protected(cfg.Positions.Create, hiring))
	mux.Handle("GET /api/positions", protected(cfg.Positions.List, hiring))
	mux.Handle("GET /api/positions/{id}", protected(cfg.Positions.Get, hiring))
	mux.Handle("PUT /api/positions/{id}", protected(cfg.Positions.Update, hiring))
	mux.Handle("DELETE /api/positions/{id}", protected(cfg.Positions.Delete, hiring))

	mux.Handle("POST /api/applicants", public(cfg.APILimiter, cfg.Applicants.Apply))
	mux.Handle("GET /api/applicants", protected(cfg.Applicants.List))
	mux.Handle("GET /api/applicants/{id}", protected(cfg.Applicants.Get))
	mux.Handle("PATCH /api/applicants/{id}/status", protected(cfg.Applicants.UpdateStatus))
	mux.Handle("PATCH /api/applicants/{id}/notes", protected(cfg.Applicants.UpdateNotes))
	mux.Handle("DELETE /api/applicants/{id}", protected(cfg.Applicants.Delete))

	if cfg.Feed != nil {
		mux.Handle("GET /ws/applicants", cfg.Feed)
	}

	if cfg.Health != nil {
		mux.HandleFunc("GET /healthz", cfg.Health.Health)
		mux.HandleFunc("GET /readyz", cfg.Health.Ready)
	}
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}
