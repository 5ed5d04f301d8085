package batches_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/academia-pro/internal/application/authz"
	"github.com/tu-usuario/academia-pro/internal/application/batches"
	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain"
	batchrules "github.com/tu-usuario/academia-pro/internal/domain/batch"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

const orgA = "org-a"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrgRepo struct{ orgs map[string]*entity.Organization }

var _ repository.OrganizationRepository = (*fakeOrgRepo)(nil)

func (r *fakeOrgRepo) Create(_ context.Context, o *entity.Organization) error {
	r.orgs[o.ID] = o
	return nil
}
func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*entity.Organization, error) {
	return r.orgs[id], nil
}
func (r *fakeOrgRepo) GetByDomain(_ context.Context, _ string) (*entity.Organization, error) {
	return nil, nil
}
func (r *fakeOrgRepo) Update(_ context.Context, _ *entity.Organization) error { return nil }
func (r *fakeOrgRepo) List(_ context.Context, _, _ int) ([]*entity.Organization, error) {
	return nil, nil
}

type fakeUserRepo struct{ users map[string]*entity.User }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByEmails(_ context.Context, _ []string) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }
func (r *fakeUserRepo) ListByOrganization(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	return nil, nil
}

type fakeProgramRepo struct {
	programs map[string]*entity.Program
	deleted  []string
}

var _ repository.ProgramRepository = (*fakeProgramRepo)(nil)

func (r *fakeProgramRepo) Create(_ context.Context, p *entity.Program) error {
	cp := *p
	r.programs[p.ID] = &cp
	return nil
}
func (r *fakeProgramRepo) GetByID(_ context.Context, id string) (*entity.Program, error) {
	return r.programs[id], nil
}
func (r *fakeProgramRepo) Rename(_ context.Context, id, title string) error {
	p, ok := r.programs[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Title = title
	return nil
}
func (r *fakeProgramRepo) Delete(_ context.Context, id string) error {
	delete(r.programs, id)
	r.deleted = append(r.deleted, id)
	return nil
}
func (r *fakeProgramRepo) ListByOrganization(_ context.Context, _ string, _, _ int) ([]*entity.Program, error) {
	return nil, nil
}

type fakeBatchRepo struct {
	batches    map[string]*entity.Batch
	failCreate bool
}

var _ repository.BatchRepository = (*fakeBatchRepo)(nil)

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	if r.failCreate {
		return errors.New("insert batch: conexión perdida")
	}
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}
func (r *fakeBatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}
func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	cp := *b
	r.batches[b.ID] = &cp
	return nil
}
func (r *fakeBatchRepo) ListByOrganization(_ context.Context, _ string, _, _ int) ([]*entity.Batch, error) {
	return nil, nil
}

type fixture struct {
	orgs     *fakeOrgRepo
	users    *fakeUserRepo
	programs *fakeProgramRepo
	batches  *fakeBatchRepo
	manager  *batches.Manager
}

func newFixture() *fixture {
	f := &fixture{
		orgs:     &fakeOrgRepo{orgs: map[string]*entity.Organization{}},
		users:    &fakeUserRepo{users: map[string]*entity.User{}},
		programs: &fakeProgramRepo{programs: map[string]*entity.Program{}},
		batches:  &fakeBatchRepo{batches: map[string]*entity.Batch{}},
	}
	f.orgs.orgs[orgA] = &entity.Organization{ID: orgA, Name: "Acme Academy", Status: "active"}
	f.manager = batches.NewManager(authz.NewRoleGate(), f.orgs, f.users, f.programs, f.batches, zerolog.Nop())
	return f
}

func trainingOnlyRequest(name string) dto.CreateBatchRequest {
	return dto.CreateBatchRequest{
		OrganizationID:  orgA,
		Name:            name,
		StartDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC),
		TrainingEnabled: true,
		Training:        &dto.TrainingConfigDTO{Days: []string{"Mon", "Wed"}, StartTime: "10:00", EndTime: "12:00"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: acoplamiento Batch ↔ Program
// ──────────────────────────────────────────────────────────────────────────────

// Crear un batch crea también su Program 1:1 con el mismo nombre y la
// misma organización; el batch nace en PLANNED.
func TestCreate_CreaProgramAcoplado(t *testing.T) {
	f := newFixture()

	out, err := f.manager.Create(context.Background(), entity.RoleSuperAdmin, trainingOnlyRequest("Go Backend 2026-T3"))
	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusPlanned, out.Status)
	require.NotEmpty(t, out.ProgramID)

	p := f.programs.programs[out.ProgramID]
	require.NotNil(t, p, "el Program debe existir")
	assert.Equal(t, "Go Backend 2026-T3", p.Title, "Title del Program = nombre del batch")
	assert.Equal(t, orgA, p.OrganizationID)
}

// Solo el tier máximo puede crear batches.
func TestCreate_RolInsuficiente_Forbidden(t *testing.T) {
	f := newFixture()

	for _, role := range []string{entity.RoleOrgAdmin, entity.RoleInstructor, entity.RoleLearner, entity.RoleGuest, "desconocido"} {
		_, err := f.manager.Create(context.Background(), role, trainingOnlyRequest("X"))
		assert.ErrorIs(t, err, domain.ErrForbidden, "rol %s no debe poder crear", role)
	}
	assert.Empty(t, f.programs.programs, "un rechazo de permiso no escribe nada")
	assert.Empty(t, f.batches.batches)
}

// Configuración rechazada por el validador: ni Program ni Batch se crean y
// el RuleError viaja intacto hasta el caller.
func TestCreate_ConfigInvalida_SinEscritura(t *testing.T) {
	f := newFixture()

	in := trainingOnlyRequest("X")
	in.TrainingEnabled = false
	in.Training = nil // ningún feature activo

	_, err := f.manager.Create(context.Background(), entity.RoleSuperAdmin, in)
	var rerr *batchrules.RuleError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, batchrules.KindNoFeatureSelected, rerr.Kind)

	assert.Empty(t, f.programs.programs)
	assert.Empty(t, f.batches.batches)
}

// Si la inserción del Batch falla después de crear el Program, el Program
// huérfano se elimina como compensación: no queda un par a medias.
func TestCreate_FalloDelBatch_CompensaElProgram(t *testing.T) {
	f := newFixture()
	f.batches.failCreate = true

	_, err := f.manager.Create(context.Background(), entity.RoleSuperAdmin, trainingOnlyRequest("X"))
	require.ErrorIs(t, err, domain.ErrPersistence)

	assert.Empty(t, f.programs.programs, "el Program huérfano debe eliminarse")
	assert.Len(t, f.programs.deleted, 1)
}

// Organización inexistente: nada se escribe.
func TestCreate_OrgInexistente_NotFound(t *testing.T) {
	f := newFixture()
	in := trainingOnlyRequest("X")
	in.OrganizationID = "org-fantasma"

	_, err := f.manager.Create(context.Background(), entity.RoleSuperAdmin, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.programs.programs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: normalización de assessment
// ──────────────────────────────────────────────────────────────────────────────

// Training + assessment: el servidor descarta la ventana enviada y fuerza
// TRAINER_MANAGED / PENDING_TRAINER.
func TestCreate_TrainingMasAssessment_FuerzaTrainerManaged(t *testing.T) {
	f := newFixture()
	in := trainingOnlyRequest("X")
	in.AssessmentEnabled = true
	start := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 2, 18, 0, 0, 0, time.UTC)
	in.Assessment = &dto.AssessmentConfigDTO{StartAt: &start, EndAt: &end}

	out, err := f.manager.Create(context.Background(), entity.RoleSuperAdmin, in)
	require.NoError(t, err)
	require.NotNil(t, out.Assessment)
	assert.Equal(t, entity.AssessmentModeTrainerManaged, out.Assessment.Mode)
	assert.Equal(t, entity.AssessmentStatusPendingTrainer, out.Assessment.Status)
	assert.Nil(t, out.Assessment.StartAt, "la ventana del caller se descarta")
	assert.Nil(t, out.Assessment.EndAt)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func createdBatch(t *testing.T, f *fixture) *dto.BatchResponse {
	t.Helper()
	out, err := f.manager.Create(context.Background(), entity.RoleSuperAdmin, trainingOnlyRequest("Go Backend 2026-T3"))
	require.NoError(t, err)
	return out
}

func updateFrom(b *dto.BatchResponse) dto.UpdateBatchRequest {
	return dto.UpdateBatchRequest{
		Name:            b.Name,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		TrainingEnabled: true,
		Training:        &dto.TrainingConfigDTO{Days: []string{"Mon", "Wed"}, StartTime: "10:00", EndTime: "12:00"},
	}
}

// Renombrar el batch renombra también su Program enlazado.
func TestUpdate_RenombraElProgram(t *testing.T) {
	f := newFixture()
	created := createdBatch(t, f)

	in := updateFrom(created)
	in.Name = "Go Backend 2026-T4"
	out, err := f.manager.Update(context.Background(), entity.RoleSuperAdmin, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Go Backend 2026-T4", out.Name)
	assert.Equal(t, "Go Backend 2026-T4", f.programs.programs[created.ProgramID].Title)
}

// Configuración rechazada en update: el batch persistido queda intacto.
func TestUpdate_ConfigInvalida_BatchIntacto(t *testing.T) {
	f := newFixture()
	created := createdBatch(t, f)

	in := updateFrom(created)
	in.TrainingEnabled = false
	in.LabEnabled = true
	in.AssessmentEnabled = true // labs+assessments sin training

	_, err := f.manager.Update(context.Background(), entity.RoleSuperAdmin, created.ID, in)
	var rerr *batchrules.RuleError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, batchrules.KindLabsAndAssessmentsRequireTraining, rerr.Kind)

	persisted := f.batches.batches[created.ID]
	assert.True(t, persisted.TrainingEnabled, "el estado previo no debe cambiar")
	assert.False(t, persisted.LabEnabled)
}

// El owner asignado debe pertenecer a la organización del batch.
func TestUpdate_OwnerDeOtraOrg_Rechaza(t *testing.T) {
	f := newFixture()
	created := createdBatch(t, f)
	f.users.users["owner-b"] = &entity.User{ID: "owner-b", OrganizationID: "org-b", Role: entity.RoleInstructor}

	in := updateFrom(created)
	owner := "owner-b"
	in.OwnerID = &owner

	_, err := f.manager.Update(context.Background(), entity.RoleSuperAdmin, created.ID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Owner válido de la misma organización: se asigna.
func TestUpdate_OwnerMismaOrg_Asigna(t *testing.T) {
	f := newFixture()
	created := createdBatch(t, f)
	f.users.users["owner-a"] = &entity.User{ID: "owner-a", OrganizationID: orgA, Role: entity.RoleInstructor}

	in := updateFrom(created)
	owner := "owner-a"
	in.OwnerID = &owner

	out, err := f.manager.Update(context.Background(), entity.RoleSuperAdmin, created.ID, in)
	require.NoError(t, err)
	require.NotNil(t, out.OwnerID)
	assert.Equal(t, "owner-a", *out.OwnerID)
}

// Batch inexistente.
func TestUpdate_BatchInexistente_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.manager.Update(context.Background(), entity.RoleSuperAdmin, "no-existe", dto.UpdateBatchRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
