package enrollment_test

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/academia-pro/internal/domain"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula la base con los mismos invariantes que el esquema real:
// UNIQUE global sobre users.email y UNIQUE sobre (user_id, batch_id).
// fakeTxRunner emula la transacción con snapshot + restore.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	users       map[string]*entity.User       // por email
	enrollments map[string]*entity.Enrollment // por "userID|batchID"
	batches     map[string]*entity.Batch      // por ID

	failUserCreateEmail string // email cuyo INSERT de usuario falla (inyección)
	hideFromFind        string // email invisible para FindByEmails (emula read skew)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[string]*entity.User{},
		enrollments: map[string]*entity.Enrollment{},
		batches:     map[string]*entity.Batch{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	cp.failUserCreateEmail = s.failUserCreateEmail
	cp.hideFromFind = s.hideFromFind
	for k, v := range s.users {
		u := *v
		cp.users[k] = &u
	}
	for k, v := range s.enrollments {
		e := *v
		cp.enrollments[k] = &e
	}
	for k, v := range s.batches {
		b := *v
		cp.batches[k] = &b
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.users = from.users
	s.enrollments = from.enrollments
	s.batches = from.batches
}

func (s *fakeStore) addBatch(id, orgID string) {
	s.batches[id] = &entity.Batch{
		ID:             id,
		OrganizationID: orgID,
		Name:           "batch-" + id,
		Status:         entity.BatchStatusPlanned,
	}
}

func (s *fakeStore) addUser(email, orgID string) *entity.User {
	u := &entity.User{
		ID:             "user-" + email,
		OrganizationID: orgID,
		Email:          email,
		Name:           email,
		Role:           entity.RoleLearner,
		Status:         "active",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	s.users[email] = u
	return u
}

func enrollKey(userID, batchID string) string { return userID + "|" + batchID }

// ── UserRepository ──

type fakeUserRepo struct{ s *fakeStore }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.Email == r.s.failUserCreateEmail {
		return fmt.Errorf("insert user: conexión perdida")
	}
	if _, ok := r.s.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.s.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmails(_ context.Context, emails []string) ([]*entity.User, error) {
	var out []*entity.User
	for _, e := range emails {
		if e == r.s.hideFromFind {
			continue
		}
		if u, ok := r.s.users[e]; ok {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.s.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) ListByOrganization(_ context.Context, orgID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.users {
		if u.OrganizationID == orgID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── EnrollmentRepository ──

type fakeEnrollRepo struct{ s *fakeStore }

var _ repository.EnrollmentRepository = (*fakeEnrollRepo)(nil)

func (r *fakeEnrollRepo) Create(_ context.Context, e *entity.Enrollment) error {
	k := enrollKey(e.UserID, e.BatchID)
	if _, ok := r.s.enrollments[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *e
	r.s.enrollments[k] = &cp
	return nil
}

func (r *fakeEnrollRepo) GetByUserAndBatch(_ context.Context, userID, batchID string) (*entity.Enrollment, error) {
	e, ok := r.s.enrollments[enrollKey(userID, batchID)]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEnrollRepo) ListByBatch(_ context.Context, batchID string, _, _ int) ([]*entity.Enrollment, error) {
	var out []*entity.Enrollment
	for _, e := range r.s.enrollments {
		if e.BatchID == batchID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnrollRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entity.Enrollment, error) {
	var out []*entity.Enrollment
	for _, e := range r.s.enrollments {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEnrollRepo) CountByBatch(_ context.Context, batchID string) (int, error) {
	n := 0
	for _, e := range r.s.enrollments {
		if e.BatchID == batchID {
			n++
		}
	}
	return n, nil
}

// ── BatchRepository ──

type fakeBatchRepo struct{ s *fakeStore }

var _ repository.BatchRepository = (*fakeBatchRepo)(nil)

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	cp := *b
	r.s.batches[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	cp := *b
	r.s.batches[b.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) ListByOrganization(_ context.Context, orgID string, _, _ int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.OrganizationID == orgID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── TxRunner ──

// fakeTxRunner emula el rollback transaccional: toma un snapshot del store
// antes de ejecutar fn y lo restaura si fn devuelve error.
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(userRepo repository.UserRepository, enrollRepo repository.EnrollmentRepository) error) error {
	snap := t.s.snapshot()
	if err := fn(&fakeUserRepo{s: t.s}, &fakeEnrollRepo{s: t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
