package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/security/auth"
)

func okHandler(t *testing.T, gotPrincipal *domain.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			t.Fatalf("expected principal in context")
		}
		if gotPrincipal != nil {
			*gotPrincipal = p
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatalf("expected success=false")
	}
	return body.Message
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tm := auth.NewTokenManager("secret", "recruitdesk", time.Hour)
	h := Authenticate(tm, nil)(okHandler(t, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthenticated." {
		t.Fatalf("expected Unauthenticated., got %q", msg)
	}
}

func TestAuthenticateNonBearerScheme(t *testing.T) {
	tm := auth.NewTokenManager("secret", "recruitdesk", time.Hour)
	h := Authenticate(tm, nil)(okHandler(t, nil))

	// A header without the Bearer prefix is treated like an absent header,
	// not like a malformed token.
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "malformed-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Unauthenticated." {
		t.Fatalf("expected Unauthenticated., got %q", msg)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tm := auth.NewTokenManager("secret", "recruitdesk", time.Hour)
	h := Authenticate(tm, nil)(okHandler(t, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer bogus.token.value")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Invalid token" {
		t.Fatalf("expected Invalid token, got %q", msg)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	tm := auth.NewTokenManager("secret", "recruitdesk", time.Hour)
	token, err := tm.Issue(domain.Principal{UserID: "u1", CompanyID: "c1", Role: domain.RoleRecruiter})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	var got domain.Principal
	h := Authenticate(tm, nil)(okHandler(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.UserID != "u1" || got.CompanyID != "c1" || got.Role != domain.RoleRecruiter {
		t.Fatalf("principal mismatch: %+v", got)
	}
}

func serveWithRole(t *testing.T, role domain.Role, allowed ...domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	h := RequireRoles(allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/positions", nil)
	req = req.WithContext(WithPrincipal(req.Context(), domain.Principal{
		UserID: "u1", CompanyID: "c1", Role: role,
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireRolesAllows(t *testing.T) {
	rec := serveWithRole(t, domain.RoleAdmin, domain.RoleAdmin, domain.RoleRecruiter)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRolesDenies(t *testing.T) {
	rec := serveWithRole(t, domain.RoleHR, domain.RoleAdmin, domain.RoleRecruiter)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "Forbidden: You do not have enough permissions" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRequireRolesEmptySetDeniesEveryone(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleRecruiter, domain.RoleHR} {
		rec := serveWithRole(t, role)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403 from empty role set, got %d", role, rec.Code)
		}
	}
}

func TestRequireRolesWithoutPrincipal(t *testing.T) {
	h := RequireRoles(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when principal missing, got %d", rec.Code)
	}
}
