package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/respond"
	"github.com/yourorg/recruitdesk/internal/security/auth"
)

type principalContextKey struct{}

// Authenticate verifies the bearer token on the request and attaches the
// resulting principal to the context. It never touches the store: the token
// is self-contained.
//
// A missing header, a non-Bearer scheme, and an empty token are all rejected
// identically ("Unauthenticated."); only a present-but-unverifiable token
// yields "Invalid token".
func Authenticate(tm *auth.TokenManager, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := auth.ExtractToken(r.Header.Get("Authorization"))
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}

			claims, err := tm.Verify(tokenString)
			if err != nil {
				log.Debug("token rejected", slog.String("path", r.URL.Path))
				respond.Message(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			principal := domain.Principal{
				UserID:    claims.UserID,
				CompanyID: claims.CompanyID,
				Role:      domain.Role(claims.Role),
			}
			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles denies the request unless the principal's role is a member of
// allowed. An empty allowed set denies every role: the gate fails closed
// rather than defaulting open. Must run after Authenticate.
func RequireRoles(allowed ...domain.Role) func(http.Handler) http.Handler {
	roleSet := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		roleSet[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				// Authenticate was skipped in the pipeline; treat as unauthenticated.
				respond.Message(w, http.StatusUnauthorized, "Unauthenticated.")
				return
			}
			if _, ok := roleSet[principal.Role]; !ok {
				respond.Message(w, http.StatusForbidden, "Forbidden: You do not have enough permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// PrincipalFromContext returns the authenticated principal attached by
// Authenticate.
func PrincipalFromContext(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(domain.Principal)
	return p, ok
}

// WithPrincipal attaches a principal to a context. Exposed for tests and for
// non-HTTP entry points.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}
