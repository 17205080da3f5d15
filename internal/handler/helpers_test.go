package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/yourorg/recruitdesk/internal/domain"
	"github.com/yourorg/recruitdesk/internal/events"
	"github.com/yourorg/recruitdesk/internal/respond"
	"github.com/yourorg/recruitdesk/internal/security/auth"
	"github.com/yourorg/recruitdesk/internal/service"
)

// memoryStore is an in-memory stand-in for the Postgres repositories with the
// same scoping semantics: scoped reads conjoin the company id, scoped
// mutations report ErrNotFound when nothing matched, and applicants resolve
// their tenant through the owning position.
type memoryStore struct {
	mu         sync.Mutex
	users      map[string]*domain.User
	companies  map[string]*domain.Company
	positions  map[string]*domain.Position
	applicants map[string]*domain.Applicant
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[string]*domain.User),
		companies:  make(map[string]*domain.Company),
		positions:  make(map[string]*domain.Position),
		applicants: make(map[string]*domain.Applicant),
	}
}

func (s *memoryStore) Create(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	switch e := v.(type) {
	case *domain.User:
		for _, u := range s.users {
			if u.Email == e.Email {
				return domain.ErrEmailTaken
			}
		}
		e.CreatedAt, e.UpdatedAt = now, now
		copied := *e
		s.users[e.ID] = &copied
	case *domain.Position:
		e.CreatedAt, e.UpdatedAt = now, now
		copied := *e
		s.positions[e.ID] = &copied
	case *domain.Applicant:
		e.CreatedAt, e.UpdatedAt = now, now
		copied := *e
		s.applicants[e.ID] = &copied
	}
	return nil
}

type memoryUserRepo struct{ store *memoryStore }

func (r *memoryUserRepo) Create(user *domain.User) error { return r.store.Create(user) }

func (r *memoryUserRepo) GetByEmail(email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUserRepo) GetByID(id, companyID string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepo) ListByCompany(companyID string) ([]*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.User
	for _, u := range r.store.users {
		if u.CompanyID == companyID {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryUserRepo) Delete(id, companyID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.store.users, id)
	return nil
}

type memoryCompanyRepo struct{ store *memoryStore }

func (r *memoryCompanyRepo) CreateWithAdmin(company *domain.Company, admin *domain.User) error {
	if err := r.store.Create(admin); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	company.CreatedAt, company.UpdatedAt = now, now
	copied := *company
	r.store.companies[company.ID] = &copied
	return nil
}

func (r *memoryCompanyRepo) GetByID(id string) (*domain.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

type memoryPositionRepo struct{ store *memoryStore }

func (r *memoryPositionRepo) Create(position *domain.Position) error {
	return r.store.Create(position)
}

func (r *memoryPositionRepo) GetByID(id, companyID string) (*domain.Position, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.positions[id]
	if !ok || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memoryPositionRepo) ListByCompany(companyID string) ([]*domain.Position, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Position
	for _, p := range r.store.positions {
		if p.CompanyID == companyID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryPositionRepo) Update(position *domain.Position) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.positions[position.ID]
	if !ok || p.CompanyID != position.CompanyID {
		return domain.ErrNotFound
	}
	p.Title = position.Title
	p.Location = position.Location
	p.Type = position.Type
	p.Description = position.Description
	p.Salary = position.Salary
	p.UpdatedAt = time.Now()
	return nil
}

func (r *memoryPositionRepo) Delete(id, companyID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.positions[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.store.positions, id)
	return nil
}

type memoryApplicantRepo struct{ store *memoryStore }

func (r *memoryApplicantRepo) owner(positionID string) (string, bool) {
	p, ok := r.store.positions[positionID]
	if !ok {
		return "", false
	}
	return p.CompanyID, true
}

func (r *memoryApplicantRepo) Create(applicant *domain.Applicant) error {
	return r.store.Create(applicant)
}

func (r *memoryApplicantRepo) GetByID(id, companyID string) (*domain.Applicant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.applicants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if owner, ok := r.owner(a.PositionID); !ok || owner != companyID {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryApplicantRepo) ListByCompany(companyID, positionID string) ([]*domain.Applicant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.Applicant
	for _, a := range r.store.applicants {
		if positionID != "" && a.PositionID != positionID {
			continue
		}
		if owner, ok := r.owner(a.PositionID); ok && owner == companyID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryApplicantRepo) UpdateStatus(id, companyID string, status domain.ApplicantStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.applicants[id]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, ok := r.owner(a.PositionID); !ok || owner != companyID {
		return domain.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (r *memoryApplicantRepo) UpdateNotes(id, companyID, notes string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.applicants[id]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, ok := r.owner(a.PositionID); !ok || owner != companyID {
		return domain.ErrNotFound
	}
	a.Notes = notes
	a.UpdatedAt = time.Now()
	return nil
}

func (r *memoryApplicantRepo) Delete(id, companyID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.applicants[id]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, ok := r.owner(a.PositionID); !ok || owner != companyID {
		return domain.ErrNotFound
	}
	delete(r.store.applicants, id)
	return nil
}

func (r *memoryApplicantRepo) CompanyForPosition(positionID string) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if owner, ok := r.owner(positionID); ok {
		return owner, nil
	}
	return "", domain.ErrNotFound
}

func (r *memoryApplicantRepo) PurgeRejectedBefore(cutoff time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var purged int64
	for id, a := range r.store.applicants {
		if a.Status == domain.StatusRejected && a.UpdatedAt.Before(cutoff) {
			delete(r.store.applicants, id)
			purged++
		}
	}
	return purged, nil
}

// testEnv is a fully wired API over in-memory storage.
type testEnv struct {
	router http.Handler
	tokens *auth.TokenManager
	hub    *events.Hub
	store  *memoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemoryStore()
	tokens := auth.NewTokenManager("test-secret", "recruitdesk-test", time.Hour)
	hub := events.NewHub()

	userRepo := &memoryUserRepo{store: store}
	companyRepo := &memoryCompanyRepo{store: store}
	positionRepo := &memoryPositionRepo{store: store}
	applicantRepo := &memoryApplicantRepo{store: store}

	authSvc := service.NewAuthService(userRepo, companyRepo, tokens, nil, 4, nil)
	userSvc := service.NewUserService(userRepo, nil, 4, nil)
	positionSvc := service.NewPositionService(positionRepo, nil, nil)
	applicantSvc := service.NewApplicantService(applicantRepo, hub, nil, nil)

	router := NewRouter(RouterConfig{
		Auth:       NewAuthHandler(authSvc, nil),
		Users:      NewUserHandler(userSvc, nil),
		Positions:  NewPositionHandler(positionSvc, nil),
		Applicants: NewApplicantHandler(applicantSvc, nil),
		Feed:       NewFeedHandler(hub, tokens, nil, nil),
		Tokens:     tokens,
	})
	return &testEnv{router: router, tokens: tokens, hub: hub, store: store}
}

// do performs one request against the router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, respond.Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env respond.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

// doRaw performs a request with a verbatim Authorization header value.
func (e *testEnv) doRaw(t *testing.T, method, path, authHeader string) (*httptest.ResponseRecorder, respond.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env respond.Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

// register creates a company and returns the admin's login token.
func (e *testEnv) register(t *testing.T, companyName, email string) (token, companyID, userID string) {
	t.Helper()
	rec, env := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"companyName": companyName,
		"fullName":    "Admin " + companyName,
		"email":       email,
		"password":    "s3cretpass",
		"phone":       "555-0100",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", companyName, rec.Code, rec.Body.String())
	}
	data := env.Data.(map[string]any)
	companyID = data["companyId"].(string)
	userID = data["userId"].(string)

	rec, env = e.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "s3cretpass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	token = env.Data.(map[string]any)["token"].(string)
	return token, companyID, userID
}

// createPosition opens a position and returns its id.
func (e *testEnv) createPosition(t *testing.T, token, title string) string {
	t.Helper()
	rec, env := e.do(t, http.MethodPost, "/api/positions", token, map[string]any{
		"title":       title,
		"location":    "Remote",
		"type":        "FULL_TIME",
		"description": "Build things",
		"salary":      "90000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create position: status %d body %s", rec.Code, rec.Body.String())
	}
	return env.Data.(map[string]any)["id"].(string)
}
