package repository

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// ProgramRepository define el puerto de persistencia para Program (DIP).
// Delete existe solo como compensación del Lifecycle Manager cuando la
// creación del Batch falla después de crear su Program (modelo batch-first);
// ningún otro componente elimina Programs.
type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	GetByID(ctx context.Context, id string) (*entity.Program, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Program, error)
}
