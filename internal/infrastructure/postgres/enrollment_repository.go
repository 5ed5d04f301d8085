package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/academia-pro/internal/domain"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

var _ repository.EnrollmentRepository = (*EnrollmentRepo)(nil)

const enrollmentColumns = `id, user_id, batch_id, status, enrolled_at, updated_at`

// EnrollmentRepo implementación del puerto EnrollmentRepository sobre
// PostgreSQL. Acepta el pool o una tx (ver TxRunner) vía querier.
type EnrollmentRepo struct {
	db querier
}

// NewEnrollmentRepository construye el adaptador de persistencia para matrículas.
func NewEnrollmentRepository(db querier) *EnrollmentRepo {
	return &EnrollmentRepo{db: db}
}

// Create persiste una nueva matrícula. El UNIQUE (user_id, batch_id) se
// reporta como domain.ErrDuplicate; la FK rota como domain.ErrNotFound.
func (r *EnrollmentRepo) Create(ctx context.Context, e *entity.Enrollment) error {
	query := `
		INSERT INTO enrollments (` + enrollmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.UserID, e.BatchID, e.Status, e.EnrolledAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// GetByUserAndBatch obtiene la matrícula de un usuario en un batch, o nil.
func (r *EnrollmentRepo) GetByUserAndBatch(ctx context.Context, userID, batchID string) (*entity.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE user_id = $1 AND batch_id = $2`
	var e entity.Enrollment
	err := r.db.QueryRow(ctx, query, userID, batchID).Scan(
		&e.ID, &e.UserID, &e.BatchID, &e.Status, &e.EnrolledAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return &e, nil
}

// ListByBatch lista matrículas de un batch con paginación.
func (r *EnrollmentRepo) ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]*entity.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments
		WHERE batch_id = $1 ORDER BY enrolled_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, batchID, limit, offset)
}

// ListByUser lista matrículas de un usuario con paginación.
func (r *EnrollmentRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments
		WHERE user_id = $1 ORDER BY enrolled_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, userID, limit, offset)
}

// CountByBatch cuenta las matrículas de un batch.
func (r *EnrollmentRepo) CountByBatch(ctx context.Context, batchID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments WHERE batch_id = $1`, batchID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return n, nil
}

func (r *EnrollmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Enrollment
	for rows.Next() {
		var e entity.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.BatchID, &e.Status, &e.EnrolledAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
