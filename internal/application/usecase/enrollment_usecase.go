package usecase

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// EnrollmentQueryUseCase consultas de matrículas. Las escrituras viven en
// internal/application/enrollment (Reconciler / BulkRunner), único punto
// de mutación de Users y Enrollments.
type EnrollmentQueryUseCase struct {
	repo repository.EnrollmentRepository
}

// NewEnrollmentQueryUseCase construye el caso de uso con el puerto de persistencia.
func NewEnrollmentQueryUseCase(repo repository.EnrollmentRepository) *EnrollmentQueryUseCase {
	return &EnrollmentQueryUseCase{repo: repo}
}

// ListByBatch lista las matrículas de un batch con paginación.
func (uc *EnrollmentQueryUseCase) ListByBatch(ctx context.Context, batchID string, limit, offset int) (*dto.EnrollmentListResponse, error) {
	list, err := uc.repo.ListByBatch(ctx, batchID, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return toEnrollmentList(list, limit, offset, total), nil
}

// ListByUser lista las matrículas de un usuario con paginación.
func (uc *EnrollmentQueryUseCase) ListByUser(ctx context.Context, userID string, limit, offset int) (*dto.EnrollmentListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toEnrollmentList(list, limit, offset, 0), nil
}

func toEnrollmentList(list []*entity.Enrollment, limit, offset, total int) *dto.EnrollmentListResponse {
	items := make([]dto.EnrollmentResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.EnrollmentResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			BatchID:    e.BatchID,
			Status:     e.Status,
			EnrolledAt: e.EnrolledAt,
		})
	}
	return &dto.EnrollmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}
