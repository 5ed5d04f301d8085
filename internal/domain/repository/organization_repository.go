package repository

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el recurso no existe.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByDomain(ctx context.Context, domain string) (*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
	List(ctx context.Context, limit, offset int) ([]*entity.Organization, error)
}
