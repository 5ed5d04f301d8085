package repository

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// La tabla lleva UNIQUE global sobre email: Create devuelve
// domain.ErrEmailAlreadyExists ante la violación, lo que convierte
// cualquier carrera lectura-escritura entre tenants en un fallo de
// inserción en vez de una fuga silenciosa entre organizaciones.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByEmails devuelve los usuarios existentes para el conjunto de
	// emails (para el chequeo de contaminación entre tenants).
	FindByEmails(ctx context.Context, emails []string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.User, error)
}
