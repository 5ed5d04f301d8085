// Package enrollment implementa los dos caminos de matrícula del sistema:
// el Reconciler atómico (todo-o-nada) y el Runner best-effort (fila a fila,
// con éxito parcial). Son componentes separados a propósito: sus garantías
// son distintas y nunca deben mezclarse en una sola función.
//
// Toda mutación de Users y Enrollments del sistema pasa por este paquete;
// ningún otro componente escribe esas tablas directamente.
package enrollment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// Row fila de matrícula ya normalizada para los casos de uso.
type Row struct {
	Email string
	Name  string
	Role  string // vacío = LEARNER
}

// ReconcileResult resultado del camino atómico.
type ReconcileResult struct {
	Processed int // filas procesadas (todas, o la llamada falló)
	Enrolled  int // matrículas nuevas creadas; 0 en una re-ejecución idéntica
}

// Reconciler matrícula atómica: todas las filas se aplican o ninguna.
type Reconciler struct {
	tx        TxRunner
	userRepo  repository.UserRepository
	batchRepo repository.BatchRepository
	log       zerolog.Logger
}

// NewReconciler construye el reconciliador con el runner transaccional y
// los puertos de lectura previos a la transacción.
func NewReconciler(tx TxRunner, userRepo repository.UserRepository, batchRepo repository.BatchRepository, log zerolog.Logger) *Reconciler {
	return &Reconciler{tx: tx, userRepo: userRepo, batchRepo: batchRepo, log: log}
}

// Reconcile matricula todas las filas en el batch o ninguna:
//
//  1. Pasada local sin I/O: email mínimo-válido por fila; cualquier fallo
//     aborta con *ValidationError sin procesar nada.
//  2. Chequeo de contaminación de tenant: emails ya ligados a OTRA
//     organización abortan con *ConflictError.
//  3. Aplicación atómica en UNA transacción: upsert de User por email
//     (crear en la organización destino con credencial placeholder, o
//     actualizar nombre) y upsert idempotente de Enrollment por
//     (user, batch). El chequeo cross-org se repite por fila DENTRO de la
//     tx porque el paso 2 corre fuera de ella.
//
// Cualquier fallo de escritura revierte la transacción completa; el caller
// debe asumir que nada quedó confirmado.
func (r *Reconciler) Reconcile(ctx context.Context, batchID, orgID string, rows []dto.EnrollRow) (*ReconcileResult, error) {
	b, err := r.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if b == nil || b.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}

	normalized, verr := normalizeRows(rows)
	if verr != nil {
		return nil, verr
	}

	// Pre-chequeo cross-org fuera de la tx: respuesta precisa y barata
	// para el caso común. El invariante real lo sostienen el re-chequeo
	// dentro de la tx y el UNIQUE global de users.email.
	if cerr := r.checkCrossOrg(ctx, r.userRepo, orgID, normalized); cerr != nil {
		return nil, cerr
	}

	res := &ReconcileResult{}
	err = r.tx.Run(ctx, func(userRepo repository.UserRepository, enrollRepo repository.EnrollmentRepository) error {
		for _, row := range normalized {
			user, err := userRepo.GetByEmail(ctx, row.Email)
			if err != nil {
				return err
			}
			switch {
			case user == nil:
				user = newPlaceholderUser(orgID, row)
				if err := userRepo.Create(ctx, user); err != nil {
					return err
				}
			case user.OrganizationID != orgID:
				// Apareció entre el pre-chequeo y la tx: frontera dura.
				return &ConflictError{Emails: []string{row.Email}}
			default:
				if user.Name != row.Name && row.Name != "" {
					user.Name = row.Name
					user.UpdatedAt = time.Now()
					if err := userRepo.Update(ctx, user); err != nil {
						return err
					}
				}
			}

			existing, err := enrollRepo.GetByUserAndBatch(ctx, user.ID, batchID)
			if err != nil {
				return err
			}
			if existing == nil {
				now := time.Now()
				if err := enrollRepo.Create(ctx, &entity.Enrollment{
					ID:         uuid.New().String(),
					UserID:     user.ID,
					BatchID:    batchID,
					Status:     entity.EnrollmentStatusActive,
					EnrolledAt: now,
					UpdatedAt:  now,
				}); err != nil {
					return err
				}
				res.Enrolled++
			}
			res.Processed++
		}
		return nil
	})
	if err != nil {
		var cerr *ConflictError
		if errors.As(err, &cerr) {
			return nil, cerr
		}
		r.log.Error().Err(err).Str("batch_id", batchID).Msg("matrícula atómica revertida")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return res, nil
}

// checkCrossOrg busca los emails enviados entre los usuarios existentes y
// falla si alguno pertenece a una organización distinta a la destino.
func (r *Reconciler) checkCrossOrg(ctx context.Context, userRepo repository.UserRepository, orgID string, rows []Row) error {
	emails := make([]string, 0, len(rows))
	for _, row := range rows {
		emails = append(emails, row.Email)
	}
	existing, err := userRepo.FindByEmails(ctx, emails)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	var offenders []string
	for _, u := range existing {
		if u.OrganizationID != orgID {
			offenders = append(offenders, u.Email)
		}
	}
	if len(offenders) > 0 {
		return &ConflictError{Emails: offenders}
	}
	return nil
}

// normalizeRows valida sintácticamente cada fila y normaliza el email
// (minúsculas, sin espacios). Email mínimo-válido: no vacío y con "@".
func normalizeRows(rows []dto.EnrollRow) ([]Row, *ValidationError) {
	var issues []RowIssue
	out := make([]Row, 0, len(rows))
	for i, row := range rows {
		email := strings.ToLower(strings.TrimSpace(row.Email))
		if email == "" || !strings.Contains(email, "@") {
			issues = append(issues, RowIssue{Index: i, Email: row.Email, Reason: "email inválido"})
			continue
		}
		out = append(out, Row{Email: email, Name: strings.TrimSpace(row.Name), Role: row.Role})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return out, nil
}

// newPlaceholderUser crea el usuario en la organización destino con el rol
// de la fila (LEARNER por defecto) y una credencial placeholder: la emisión
// real de credenciales ocurre fuera de este núcleo.
func newPlaceholderUser(orgID string, row Row) *entity.User {
	role := row.Role
	if role == "" {
		role = entity.RoleLearner
	}
	name := row.Name
	if name == "" {
		name = row.Email
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.MinCost)
	if err != nil {
		// bcrypt con MinCost solo falla por entropía del sistema agotada.
		hash = []byte("!placeholder")
	}
	now := time.Now()
	return &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Email:          row.Email,
		PasswordHash:   string(hash),
		Name:           name,
		Role:           role,
		Status:         "active",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
