package service

import (
	"sync"
	"time"

	"github.com/yourorg/recruitdesk/internal/domain"
)

// In-memory repository fakes mirroring the scoping behavior of the Postgres
// implementations: scoped lookups conjoin companyID, scoped mutations report
// ErrNotFound when nothing matched.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	u := *user
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = &u
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByID(id, companyID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) ListByCompany(companyID string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*domain.Company
	users     *fakeUserRepo

	failCreate error // injected fault for CreateWithAdmin
}

func newFakeCompanyRepo(users *fakeUserRepo) *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*domain.Company), users: users}
}

func (r *fakeCompanyRepo) CreateWithAdmin(company *domain.Company, admin *domain.User) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	if err := r.users.Create(admin); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *company
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.companies[c.ID] = &c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

type fakePositionRepo struct {
	mu        sync.Mutex
	positions map[string]*domain.Position
}

func newFakePositionRepo() *fakePositionRepo {
	return &fakePositionRepo{positions: make(map[string]*domain.Position)}
}

func (r *fakePositionRepo) Create(position *domain.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *position
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.positions[p.ID] = &p
	return nil
}

func (r *fakePositionRepo) GetByID(id, companyID string) (*domain.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.positions[id]
	if !ok || p.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePositionRepo) ListByCompany(companyID string) ([]*domain.Position, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Position
	for _, p := range r.positions {
		if p.CompanyID == companyID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakePositionRepo) Update(position *domain.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.positions[position.ID]
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

func (r *fakePositionRepo) Delete(id, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.positions[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.positions, id)
	return nil
}

type fakeApplicantRepo struct {
	mu         sync.Mutex
	applicants map[string]*domain.Applicant
	positions  *fakePositionRepo
}

func newFakeApplicantRepo(positions *fakePositionRepo) *fakeApplicantRepo {
	return &fakeApplicantRepo{applicants: make(map[string]*domain.Applicant), positions: positions}
}

func (r *fakeApplicantRepo) owner(positionID string) (string, bool) {
	r.positions.mu.Lock()
	defer r.positions.mu.Unlock()
	p, ok := r.positions.positions[positionID]
	if !ok {
		return "", false
	}
	return p.CompanyID, true
}

func (r *fakeApplicantRepo) Create(applicant *domain.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := *applicant
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.applicants[a.ID] = &a
	applicant.CreatedAt = a.CreatedAt
	applicant.UpdatedAt = a.UpdatedAt
	return nil
}

func (r *fakeApplicantRepo) GetByID(id, companyID string) (*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applicants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if owner, ok := r.owner(a.PositionID); !ok || owner != companyID {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeApplicantRepo) ListByCompany(companyID, positionID string) ([]*domain.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Applicant
	for _, a := range r.applicants {
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

func (r *fakeApplicantRepo) UpdateStatus(id, companyID string, status domain.ApplicantStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applicants[id]
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

func (r *fakeApplicantRepo) UpdateNotes(id, companyID, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applicants[id]
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

func (r *fakeApplicantRepo) Delete(id, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applicants[id]
	if !ok {
		return domain.ErrNotFound
	}
	if owner, ok := r.owner(a.PositionID); !ok || owner != companyID {
		return domain.ErrNotFound
	}
	delete(r.applicants, id)
	return nil
}

func (r *fakeApplicantRepo) CompanyForPosition(positionID string) (string, error) {
	if owner, ok := r.owner(positionID); ok {
		return owner, nil
	}
	return "", domain.ErrNotFound
}

func (r *fakeApplicantRepo) PurgeRejectedBefore(cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged int64
	for id, a := range r.applicants {
		if a.Status == domain.StatusRejected && a.UpdatedAt.Before(cutoff) {
			delete(r.applicants, id)
			purged++
		}
	}
	return purged, nil
}
