package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

var _ repository.ProgramRepository = (*ProgramRepo)(nil)

// ProgramRepo implementación del puerto ProgramRepository sobre PostgreSQL.
type ProgramRepo struct {
	db querier
}

// NewProgramRepository construye el adaptador de persistencia para programs.
func NewProgramRepository(db querier) *ProgramRepo {
	return &ProgramRepo{db: db}
}

// Create persiste un nuevo program.
func (r *ProgramRepo) Create(ctx context.Context, p *entity.Program) error {
	query := `
		INSERT INTO programs (id, organization_id, title, curriculum, created_at, updated_at)
		VALUES ($1, $2, $3, COALESCE(NULLIF($4, ''), '{}')::jsonb, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.OrganizationID, p.Title, p.Curriculum, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

// GetByID obtiene un program por ID.
func (r *ProgramRepo) GetByID(ctx context.Context, id string) (*entity.Program, error) {
	query := `
		SELECT id, organization_id, title, curriculum::text, created_at, updated_at
		FROM programs WHERE id = $1`
	var p entity.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OrganizationID, &p.Title, &p.Curriculum, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get program: %w", err)
	}
	return &p, nil
}

// Rename actualiza el título (lo invoca el Lifecycle Manager cuando el
// Batch enlazado se renombra).
func (r *ProgramRepo) Rename(ctx context.Context, id, title string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE programs SET title = $2, updated_at = $3 WHERE id = $1`,
		id, title, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("rename program: %w", err)
	}
	return nil
}

// Delete elimina un program por ID (solo compensación del Lifecycle Manager).
func (r *ProgramRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return nil
}

// ListByOrganization lista programs por organización con paginación.
func (r *ProgramRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Program, error) {
	query := `
		SELECT id, organization_id, title, curriculum::text, created_at, updated_at
		FROM programs WHERE organization_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Program
	for rows.Next() {
		var p entity.Program
		if err := rows.Scan(&p.ID, &p.OrganizationID, &p.Title, &p.Curriculum, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
