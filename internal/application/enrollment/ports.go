package enrollment

import (
	"context"

	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza el todo-o-nada del camino
// atómico de matrícula: si fn devuelve error se hace Rollback y ninguna
// fila queda visible para lecturas posteriores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		enrollRepo repository.EnrollmentRepository,
	) error) error
}
