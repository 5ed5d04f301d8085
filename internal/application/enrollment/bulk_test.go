package enrollment_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/application/enrollment"
	"github.com/tu-usuario/academia-pro/internal/domain"
)

func newBulkRunner(s *fakeStore) *enrollment.BulkRunner {
	return enrollment.NewBulkRunner(
		&fakeUserRepo{s: s},
		&fakeEnrollRepo{s: s},
		&fakeBatchRepo{s: s},
		zerolog.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Éxito parcial: la diferencia central con el camino atómico
// ──────────────────────────────────────────────────────────────────────────────

// Una fila mala NO arrastra a las buenas: las confirmadas quedan
// confirmadas y la fallida se reporta con su motivo.
func TestBulkEnroll_FilaMala_NoArrastraALasBuenas(t *testing.T) {
	s := newFakeStore()
	s.addBatch(batchID, orgA)
	r := newBulkRunner(s)

	res, err := r.BulkEnroll(context.Background(), batchID, orgA, []dto.EnrollRow{
		{Email: "ana@acme.test", Name: "Ana"},
		{Email: "sin-arroba", Name: "Mal"},
		{Email: "carla@acme.test", Name: "Carla"},
	})
	require.NoError(t, err, "el éxito parcial no es un error de la llamada")
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, res.NewUsers)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, res.Failures[0].Index)

	assert.Contains(t, s.users, "ana@acme.test", "las filas buenas quedan aplicadas")
	assert.Contains(t, s.users, "carla@acme.test")
	assert.Len(t, s.enrollments, 2)
}

// Fallo de persistencia en una fila intermedia: las anteriores NO se
// revierten (best-effort, sin transacción que abarque filas).
func TestBulkEnroll_FalloIntermedio_NoRevierteAnteriores(t *testing.T) {
	s := newFakeStore()
	s.addBatch(batchID, orgA)
	s.failUserCreateEmail = "bruno@acme.test"
	r := newBulkRunner(s)

	res, err := r.BulkEnroll(context.Background(), batchID, orgA, []dto.EnrollRow{
		{Email: "ana@acme.test", Name: "Ana"},
		{Email: "bruno@acme.test", Name: "Bruno"},
		{Email: "carla@acme.test", Name: "Carla"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.Failed)

	assert.Contains(t, s.users, "ana@acme.test", "la fila previa al fallo permanece")
	assert.Contains(t, s.users, "carla@acme.test", "el procesado continúa tras el fallo")
	assert.NotContains(t, s.users, "bruno@acme.test")
}

// ──────────────────────────────────────────────────────────────────────────────
// Contadores: nuevos vs existentes
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkEnroll_CuentaNuevosYExistentes(t *testing.T) {
	s := newFakeStore()
	s.addBatch(batchID, orgA)
	s.addUser("ana@acme.test", orgA)
	r := newBulkRunner(s)

	res, err := r.BulkEnroll(context.Background(), batchID, orgA, []dto.EnrollRow{
		{Email: "ana@acme.test", Name: "Ana García"},
		{Email: "bruno@acme.test", Name: "Bruno"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 1, res.NewUsers)
	assert.Equal(t, 1, res.Existing)
	assert.Equal(t, "Ana García", s.users["ana@acme.test"].Name, "el nombre del existente se actualiza")
}

// Re-ejecutar el mismo lote es idempotente a nivel de datos: mismas
// matrículas, usuarios ya contados como existentes.
func TestBulkEnroll_Reejecucion_SinDuplicados(t *testing.T) {
	s := newFakeStore()
	s.addBatch(batchID, orgA)
	r := newBulkRunner(s)
	rows := []dto.EnrollRow{
		{Email: "ana@acme.test", Name: "Ana"},
		{Email: "bruno@acme.test", Name: "Bruno"},
	}

	_, err := r.BulkEnroll(context.Background(), batchID, orgA, rows)
	require.NoError(t, err)

	res, err := r.BulkEnroll(context.Background(), batchID, orgA, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Success)
	assert.Equal(t, 0, res.NewUsers)
	assert.Equal(t, 2, res.Existing)
	assert.Len(t, s.users, 2)
	assert.Len(t, s.enrollments, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cross-org por fila
// ──────────────────────────────────────────────────────────────────────────────

// El email de otra organización falla SOLO su fila; el resto del lote sigue.
func TestBulkEnroll_CrossOrg_FallaSoloEsaFila(t *testing.T) {
	s := newFakeStore()
	s.addBatch(batchID, orgA)
	s.addUser("intruso@otra.test", orgB)
	r := newBulkRunner(s)

	res, err := r.BulkEnroll(context.Background(), batchID, orgA, []dto.EnrollRow{
		{Email: "ana@acme.test", Name: "Ana"},
		{Email: "intruso@otra.test", Name: "Intruso"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "intruso@otra.test", res.Failures[0].Email)
	assert.Equal(t, domain.ErrCrossOrgConflict.Error(), res.Failures[0].Reason)

	// El usuario intruso no cambia de organización ni gana matrícula.
	assert.Equal(t, orgB, s.users["intruso@otra.test"].OrganizationID)
	assert.Len(t, s.enrollments, 1)
}

// Batch inexistente o de otro tenant: la llamada completa falla antes de
// tocar fila alguna.
func TestBulkEnroll_BatchAjeno_NotFound(t *testing.T) {
	s := newFakeStore()
	s.addBatch(batchID, orgB)
	r := newBulkRunner(s)

	_, err := r.BulkEnroll(context.Background(), batchID, orgA, []dto.EnrollRow{
		{Email: "ana@acme.test", Name: "Ana"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.users)
}
