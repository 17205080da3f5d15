package service

import (
	"errors"
	"testing"
	"time"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/security/auth"
)

func newAuthService(users *fakeUserRepo, companies *fakeCompanyRepo) *AuthService {
	tm := auth.NewTokenManager("test-secret", "recruitdesk-test", time.Hour)
	return NewAuthService(users, companies, tm, nil, 4, nil)
}

func TestRegisterCreatesCompanyAndAdmin(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	result, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", "555-0100")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Role != domain.RoleAdmin {
		t.Errorf("expected first user role ADMIN, got %s", result.Role)
	}
	if result.UserID == "" || result.CompanyID == "" {
		t.Error("expected non-empty user and company ids")
	}

	user, err := users.GetByEmail("admin@acme.test")
	if err != nil {
		t.Fatalf("admin not persisted: %v", err)
	}
	if user.CompanyID != result.CompanyID {
		t.Errorf("admin company %s does not match registered company %s", user.CompanyID, result.CompanyID)
	}
	if user.PasswordHash == "s3cretpass" {
		t.Error("password stored in plaintext")
	}
	if _, err := companies.GetByID(result.CompanyID); err != nil {
		t.Fatalf("company not persisted: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	if _, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", ""); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register("Other Corp", "admin@acme.test", "different", "Bob Boss", "")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterFailureLeavesNothingBehind(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	companies.failCreate = errors.New("storage unavailable")
	svc := newAuthService(users, companies)

	if _, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", ""); err == nil {
		t.Fatal("expected Register to fail")
	}
	if _, err := users.GetByEmail("admin@acme.test"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected no user after failed registration, got %v", err)
	}
	if len(companies.companies) != 0 {
		t.Errorf("expected no company after failed registration, got %d", len(companies.companies))
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	reg, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login("admin@acme.test", "s3cretpass")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != reg.UserID {
		t.Errorf("login user %s does not match registered user %s", result.User.ID, reg.UserID)
	}

	claims, err := svc.tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != reg.UserID || claims.CompanyID != reg.CompanyID {
		t.Errorf("claims %s/%s do not match registered %s/%s",
			claims.UserID, claims.CompanyID, reg.UserID, reg.CompanyID)
	}
	if claims.Role != string(domain.RoleAdmin) {
		t.Errorf("expected ADMIN claim, got %s", claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	if _, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err := svc.Login("admin@acme.test", "wrongpass")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	_, err := svc.Login("nobody@acme.test", "whatever")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMeIncludesCompanyName(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	reg, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	me, err := svc.Me(domain.Principal{UserID: reg.UserID, CompanyID: reg.CompanyID, Role: reg.Role})
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.CompanyName != "Acme Corp" {
		t.Errorf("expected company name Acme Corp, got %q", me.CompanyName)
	}
	if me.Email != "admin@acme.test" {
		t.Errorf("unexpected email %s", me.Email)
	}
}

func TestMeWrongCompanyScope(t *testing.T) {
	users := newFakeUserRepo()
	companies := newFakeCompanyRepo(users)
	svc := newAuthService(users, companies)

	reg, err := svc.Register("Acme Corp", "admin@acme.test", "s3cretpass", "Ada Admin", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err = svc.Me(domain.Principal{UserID: reg.UserID, CompanyID: "other-company", Role: reg.Role})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for mismatched tenant, got %v", err)
	}
}
