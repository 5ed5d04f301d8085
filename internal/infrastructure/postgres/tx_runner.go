package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/academia-pro/internal/application/enrollment"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

var _ enrollment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es el
// soporte del camino atómico de matrícula: aislamiento read-committed más
// los UNIQUE de users.email y enrollments(user_id, batch_id) garantizan
// que llamadas concurrentes no dupliquen filas lógicas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	enrollRepo repository.EnrollmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	enrollRepo := NewEnrollmentRepository(tx)

	if err := fn(userRepo, enrollRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
