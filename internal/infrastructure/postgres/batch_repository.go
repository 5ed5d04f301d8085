package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, organization_id, program_id, owner_id, name, start_date, end_date, status,
		training_enabled, lab_enabled, assessment_enabled,
		training_days, training_start_time, training_end_time,
		lab_access_mode, lab_fixed_hours, lab_quota_hours, lab_start_date, lab_end_date,
		assessment_mode, assessment_status, assessment_start_at, assessment_end_at,
		created_at, updated_at`

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL.
// Los configs por feature se aplanan en columnas nullables: los campos de
// un feature desactivado se guardan como NULL.
type BatchRepo struct {
	db querier
}

// NewBatchRepository construye el adaptador de persistencia para batches.
func NewBatchRepository(db querier) *BatchRepo {
	return &BatchRepo{db: db}
}

// Create persiste un nuevo batch con su configuración aplanada.
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.db.Exec(ctx, query, flattenBatch(b)...)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un batch por ID.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	row := r.db.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
	b, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// Update actualiza un batch completo (campos + configuración aplanada).
func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	query := `
		UPDATE batches SET
			organization_id = $2, program_id = $3, owner_id = $4, name = $5,
			start_date = $6, end_date = $7, status = $8,
			training_enabled = $9, lab_enabled = $10, assessment_enabled = $11,
			training_days = $12, training_start_time = $13, training_end_time = $14,
			lab_access_mode = $15, lab_fixed_hours = $16, lab_quota_hours = $17,
			lab_start_date = $18, lab_end_date = $19,
			assessment_mode = $20, assessment_status = $21,
			assessment_start_at = $22, assessment_end_at = $23,
			created_at = $24, updated_at = $25
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, flattenBatch(b)...)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// ListByOrganization lista batches por organización con paginación.
func (r *BatchRepo) ListByOrganization(ctx context.Context, orgID string, limit, offset int) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches
		WHERE organization_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// flattenBatch aplana la entidad al orden de batchColumns.
func flattenBatch(b *entity.Batch) []any {
	var (
		trainingDays              []string
		trainingStart, trainingEnd *string
		labMode                   *string
		labFixed, labQuota        *decimal.Decimal
		labStart, labEnd          *time.Time
		assessMode, assessStatus  *string
		assessStart, assessEnd    *time.Time
	)
	if b.Training != nil {
		trainingDays = b.Training.Days
		trainingStart = &b.Training.StartTime
		trainingEnd = &b.Training.EndTime
	}
	if b.Lab != nil {
		labMode = &b.Lab.AccessMode
		labFixed = b.Lab.FixedHours
		labQuota = b.Lab.QuotaHours
		labStart = b.Lab.StartDate
		labEnd = b.Lab.EndDate
	}
	if b.Assessment != nil {
		assessMode = &b.Assessment.Mode
		assessStatus = &b.Assessment.Status
		assessStart = b.Assessment.StartAt
		assessEnd = b.Assessment.EndAt
	}
	return []any{
		b.ID, b.OrganizationID, b.ProgramID, b.OwnerID, b.Name, b.StartDate, b.EndDate, b.Status,
		b.TrainingEnabled, b.LabEnabled, b.AssessmentEnabled,
		trainingDays, trainingStart, trainingEnd,
		labMode, labFixed, labQuota, labStart, labEnd,
		assessMode, assessStatus, assessStart, assessEnd,
		b.CreatedAt, b.UpdatedAt,
	}
}

// scanBatch reconstruye la entidad desde las columnas aplanadas.
func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var (
		b                         entity.Batch
		trainingDays              []string
		trainingStart, trainingEnd *string
		labMode                   *string
		labFixed, labQuota        *decimal.Decimal
		labStart, labEnd          *time.Time
		assessMode, assessStatus  *string
		assessStart, assessEnd    *time.Time
	)
	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.ProgramID, &b.OwnerID, &b.Name, &b.StartDate, &b.EndDate, &b.Status,
		&b.TrainingEnabled, &b.LabEnabled, &b.AssessmentEnabled,
		&trainingDays, &trainingStart, &trainingEnd,
		&labMode, &labFixed, &labQuota, &labStart, &labEnd,
		&assessMode, &assessStatus, &assessStart, &assessEnd,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if b.TrainingEnabled && trainingStart != nil && trainingEnd != nil {
		b.Training = &entity.TrainingConfig{
			Days:      trainingDays,
			StartTime: *trainingStart,
			EndTime:   *trainingEnd,
		}
	}
	if b.LabEnabled && labMode != nil {
		b.Lab = &entity.LabConfig{
			AccessMode: *labMode,
			FixedHours: labFixed,
			QuotaHours: labQuota,
			StartDate:  labStart,
			EndDate:    labEnd,
		}
	}
	if b.AssessmentEnabled && assessMode != nil {
		a := &entity.AssessmentConfig{Mode: *assessMode, StartAt: assessStart, EndAt: assessEnd}
		if assessStatus != nil {
			a.Status = *assessStatus
		}
		b.Assessment = a
	}
	return &b, nil
}
