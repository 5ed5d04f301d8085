package usecase

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// ProgramUseCase consultas de programs. En el modelo batch-first los
// programs solo se crean y renombran a través de su Batch (ver el
// Lifecycle Manager de internal/application/batches), por eso aquí no hay
// Create ni Update.
type ProgramUseCase struct {
	repo repository.ProgramRepository
}

// NewProgramUseCase construye el caso de uso con el puerto de persistencia.
func NewProgramUseCase(repo repository.ProgramRepository) *ProgramUseCase {
	return &ProgramUseCase{repo: repo}
}

// GetByID obtiene un program por ID.
func (uc *ProgramUseCase) GetByID(ctx context.Context, id string) (*dto.ProgramResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return entityToProgramResponse(p), nil
}

// ListByOrganization lista programs de una organización con paginación.
func (uc *ProgramUseCase) ListByOrganization(ctx context.Context, orgID string, limit, offset int) (*dto.ProgramListResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProgramResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *entityToProgramResponse(p))
	}
	return &dto.ProgramListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToProgramResponse(p *entity.Program) *dto.ProgramResponse {
	if p == nil {
		return nil
	}
	return &dto.ProgramResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Title:          p.Title,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
