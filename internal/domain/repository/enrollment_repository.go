package repository

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// EnrollmentRepository define el puerto de persistencia para Enrollment (DIP).
// La tabla lleva UNIQUE sobre (user_id, batch_id); Create devuelve
// domain.ErrDuplicate ante la violación para que llamadas concurrentes
// no puedan "ganar" dos veces la misma matrícula lógica.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *entity.Enrollment) error
	GetByUserAndBatch(ctx context.Context, userID, batchID string) (*entity.Enrollment, error)
	ListByBatch(ctx context.Context, batchID string, limit, offset int) ([]*entity.Enrollment, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Enrollment, error)
	CountByBatch(ctx context.Context, batchID string) (int, error)
}
