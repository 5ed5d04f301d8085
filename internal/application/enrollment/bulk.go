package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// BulkResult contadores agregados del camino best-effort.
type BulkResult struct {
	Success  int
	Failed   int
	NewUsers int
	Existing int
	Failures []RowIssue
}

// BulkRunner matrícula best-effort para importaciones tipo CSV donde el
// éxito parcial es aceptable. Cada fila se procesa de forma independiente:
// las filas ya confirmadas NO se revierten cuando una posterior falla.
// NO usar donde se requiera todo-o-nada; para eso está el Reconciler.
type BulkRunner struct {
	userRepo   repository.UserRepository
	enrollRepo repository.EnrollmentRepository
	batchRepo  repository.BatchRepository
	log        zerolog.Logger
}

// NewBulkRunner construye el runner con repositorios ligados al pool (sin
// transacción que abarque filas: esa es justamente su diferencia con el
// Reconciler).
func NewBulkRunner(userRepo repository.UserRepository, enrollRepo repository.EnrollmentRepository, batchRepo repository.BatchRepository, log zerolog.Logger) *BulkRunner {
	return &BulkRunner{userRepo: userRepo, enrollRepo: enrollRepo, batchRepo: batchRepo, log: log}
}

// BulkEnroll procesa cada fila por separado: find-or-create del User (con
// el mismo rechazo cross-org que el camino atómico, evaluado por fila) y
// alta idempotente del Enrollment. Cualquier error de una fila suma a
// Failed y el procesado continúa con la siguiente.
//
// La ventana de carrera lectura-escritura del chequeo cross-org por fila la
// cierra el UNIQUE global de users.email: la inserción concurrente desde
// otro tenant falla en vez de colarse, y esa fila se cuenta como fallida.
func (r *BulkRunner) BulkEnroll(ctx context.Context, batchID, orgID string, rows []dto.EnrollRow) (*BulkResult, error) {
	b, err := r.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if b == nil || b.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}

	res := &BulkResult{}
	for i, raw := range rows {
		email := strings.ToLower(strings.TrimSpace(raw.Email))
		if email == "" || !strings.Contains(email, "@") {
			res.fail(i, raw.Email, "email inválido")
			continue
		}
		row := Row{Email: email, Name: strings.TrimSpace(raw.Name), Role: raw.Role}

		if err := r.enrollRow(ctx, batchID, orgID, row, res); err != nil {
			reason := "error de persistencia"
			if errors.Is(err, domain.ErrCrossOrgConflict) {
				reason = domain.ErrCrossOrgConflict.Error()
			} else {
				r.log.Warn().Err(err).Str("email", email).Msg("fila de matrícula bulk fallida")
			}
			res.fail(i, email, reason)
		}
	}
	return res, nil
}

// enrollRow aplica una fila: usuario + matrícula idempotente.
func (r *BulkRunner) enrollRow(ctx context.Context, batchID, orgID string, row Row, res *BulkResult) error {
	user, err := r.userRepo.GetByEmail(ctx, row.Email)
	if err != nil {
		return err
	}
	switch {
	case user == nil:
		user = newPlaceholderUser(orgID, row)
		if err := r.userRepo.Create(ctx, user); err != nil {
			if !errors.Is(err, domain.ErrEmailAlreadyExists) {
				return err
			}
			// Perdimos la carrera de inserción contra otra llamada: releer
			// y decidir con el estado ya confirmado.
			winner, gerr := r.userRepo.GetByEmail(ctx, row.Email)
			if gerr != nil {
				return gerr
			}
			if winner == nil || winner.OrganizationID != orgID {
				return domain.ErrCrossOrgConflict
			}
			user = winner
			res.Existing++
			break
		}
		res.NewUsers++
	case user.OrganizationID != orgID:
		return domain.ErrCrossOrgConflict
	default:
		res.Existing++
		if row.Name != "" && user.Name != row.Name {
			user.Name = row.Name
			user.UpdatedAt = time.Now()
			if err := r.userRepo.Update(ctx, user); err != nil {
				return err
			}
		}
	}

	existing, err := r.enrollRepo.GetByUserAndBatch(ctx, user.ID, batchID)
	if err != nil {
		return err
	}
	if existing == nil {
		now := time.Now()
		err := r.enrollRepo.Create(ctx, &entity.Enrollment{
			ID:         uuid.New().String(),
			UserID:     user.ID,
			BatchID:    batchID,
			Status:     entity.EnrollmentStatusActive,
			EnrolledAt: now,
			UpdatedAt:  now,
		})
		// Dos llamadas concurrentes pueden crear la misma matrícula lógica;
		// el UNIQUE (user_id, batch_id) convierte la segunda en no-op.
		if err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	res.Success++
	return nil
}

func (r *BulkResult) fail(index int, email, reason string) {
	r.Failed++
	r.Failures = append(r.Failures, RowIssue{Index: index, Email: email, Reason: reason})
}
