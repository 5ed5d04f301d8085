package repository

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para Batch (DIP).
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Batch, error)
}
