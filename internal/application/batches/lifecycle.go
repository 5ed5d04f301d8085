// Package batches implementa el ciclo de vida de un Batch: creación con su
// Program 1:1 (modelo batch-first) y actualización con renombrado del
// Program. Toda configuración propuesta pasa por el validador puro de
// internal/domain/batch, idéntico en creación y actualización.
package batches

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/academia-pro/internal/application/authz"
	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain"
	batchrules "github.com/tu-usuario/academia-pro/internal/domain/batch"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// Manager casos de uso del ciclo de vida de batches.
type Manager struct {
	gate        authz.Gate
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	programRepo repository.ProgramRepository
	batchRepo   repository.BatchRepository
	log         zerolog.Logger
}

// NewManager construye el manager con sus puertos de persistencia y el gate
// de autorización.
func NewManager(
	gate authz.Gate,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	programRepo repository.ProgramRepository,
	batchRepo repository.BatchRepository,
	log zerolog.Logger,
) *Manager {
	return &Manager{
		gate:        gate,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		programRepo: programRepo,
		batchRepo:   batchRepo,
		log:         log,
	}
}

// Create valida la configuración, crea el Program (title = nombre del batch,
// misma organización) y luego el Batch en estado PLANNED. Requiere el tier
// máximo de la plataforma. Ante rechazo del validador no hay escritura
// alguna; si la inserción del Batch falla después de crear el Program, el
// Program huérfano se elimina como compensación.
func (m *Manager) Create(ctx context.Context, callerRole string, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if !m.gate.HasPrivilege(callerRole, authz.TierSuperAdmin) {
		return nil, domain.ErrForbidden
	}

	norm, err := batchrules.Validate(batchrules.Input{
		TrainingEnabled:   in.TrainingEnabled,
		LabEnabled:        in.LabEnabled,
		AssessmentEnabled: in.AssessmentEnabled,
		Training:          trainingFromDTO(in.Training),
		Lab:               labFromDTO(in.Lab),
		Assessment:        assessmentFromDTO(in.Assessment),
	})
	if err != nil {
		return nil, err // el rechazo viaja intacto al caller
	}

	org, err := m.orgRepo.GetByID(ctx, in.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	program := &entity.Program{
		ID:             uuid.New().String(),
		OrganizationID: in.OrganizationID,
		Title:          in.Name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := m.programRepo.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("%w: crear program: %v", domain.ErrPersistence, err)
	}

	b := &entity.Batch{
		ID:                uuid.New().String(),
		OrganizationID:    in.OrganizationID,
		ProgramID:         program.ID,
		Name:              in.Name,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		Status:            entity.BatchStatusPlanned,
		TrainingEnabled:   norm.TrainingEnabled,
		LabEnabled:        norm.LabEnabled,
		AssessmentEnabled: norm.AssessmentEnabled,
		Training:          norm.Training,
		Lab:               norm.Lab,
		Assessment:        norm.Assessment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := m.batchRepo.Create(ctx, b); err != nil {
		// Compensación: Program y Batch van acoplados, no puede quedar un
		// par a medio crear visible para lecturas posteriores.
		if delErr := m.programRepo.Delete(ctx, program.ID); delErr != nil {
			m.log.Error().Err(delErr).Str("program_id", program.ID).
				Msg("no se pudo eliminar el program huérfano tras fallo de creación del batch")
		}
		return nil, fmt.Errorf("%w: crear batch: %v", domain.ErrPersistence, err)
	}

	resp := toBatchResponse(b)
	resp.Warnings = norm.Warnings
	return resp, nil
}

// Update valida el estado completo propuesto, aplica los campos y renombra
// el Program enlazado si cambió el nombre. La reasignación de OwnerID es
// independiente de las reglas de flags pero el owner debe pertenecer a la
// organización del batch. Ante rechazo el Batch queda intacto.
func (m *Manager) Update(ctx context.Context, callerRole, batchID string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	if !m.gate.HasPrivilege(callerRole, authz.TierSuperAdmin) {
		return nil, domain.ErrForbidden
	}

	b, err := m.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}

	norm, err := batchrules.Validate(batchrules.Input{
		TrainingEnabled:   in.TrainingEnabled,
		LabEnabled:        in.LabEnabled,
		AssessmentEnabled: in.AssessmentEnabled,
		Training:          trainingFromDTO(in.Training),
		Lab:               labFromDTO(in.Lab),
		Assessment:        assessmentFromDTO(in.Assessment),
	})
	if err != nil {
		return nil, err
	}

	if in.OwnerID != nil {
		owner, err := m.userRepo.GetByID(ctx, *in.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		if owner == nil || owner.OrganizationID != b.OrganizationID {
			return nil, domain.ErrInvalidInput
		}
		b.OwnerID = in.OwnerID
	}

	renamed := in.Name != b.Name
	b.Name = in.Name
	b.StartDate = in.StartDate
	b.EndDate = in.EndDate
	if in.Status != "" {
		b.Status = in.Status
	}
	b.TrainingEnabled = norm.TrainingEnabled
	b.LabEnabled = norm.LabEnabled
	b.AssessmentEnabled = norm.AssessmentEnabled
	b.Training = norm.Training
	b.Lab = norm.Lab
	b.Assessment = norm.Assessment
	b.UpdatedAt = time.Now()

	if err := m.batchRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("%w: actualizar batch: %v", domain.ErrPersistence, err)
	}
	if renamed {
		if err := m.programRepo.Rename(ctx, b.ProgramID, b.Name); err != nil {
			return nil, fmt.Errorf("%w: renombrar program: %v", domain.ErrPersistence, err)
		}
	}

	resp := toBatchResponse(b)
	resp.Warnings = norm.Warnings
	return resp, nil
}

// GetByID obtiene un batch por ID.
func (m *Manager) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	b, err := m.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if b == nil {
		return nil, nil
	}
	return toBatchResponse(b), nil
}

// ListByOrganization lista los batches de una organización con paginación.
func (m *Manager) ListByOrganization(ctx context.Context, orgID string, limit, offset int) (*dto.BatchListResponse, error) {
	list, err := m.batchRepo.ListByOrganization(ctx, orgID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión DTO <-> entidad
// ──────────────────────────────────────────────────────────────────────────────

func trainingFromDTO(t *dto.TrainingConfigDTO) *entity.TrainingConfig {
	if t == nil {
		return nil
	}
	return &entity.TrainingConfig{Days: t.Days, StartTime: t.StartTime, EndTime: t.EndTime}
}

func labFromDTO(l *dto.LabConfigDTO) *entity.LabConfig {
	if l == nil {
		return nil
	}
	return &entity.LabConfig{
		AccessMode: l.AccessMode,
		FixedHours: l.FixedHours,
		QuotaHours: l.QuotaHours,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
	}
}

func assessmentFromDTO(a *dto.AssessmentConfigDTO) *entity.AssessmentConfig {
	if a == nil {
		return nil
	}
	return &entity.AssessmentConfig{StartAt: a.StartAt, EndAt: a.EndAt}
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	resp := &dto.BatchResponse{
		ID:                b.ID,
		OrganizationID:    b.OrganizationID,
		ProgramID:         b.ProgramID,
		Name:              b.Name,
		StartDate:         b.StartDate,
		EndDate:           b.EndDate,
		Status:            b.Status,
		OwnerID:           b.OwnerID,
		TrainingEnabled:   b.TrainingEnabled,
		LabEnabled:        b.LabEnabled,
		AssessmentEnabled: b.AssessmentEnabled,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
	if b.Training != nil {
		resp.Training = &dto.TrainingConfigDTO{
			Days:      b.Training.Days,
			StartTime: b.Training.StartTime,
			EndTime:   b.Training.EndTime,
		}
	}
	if b.Lab != nil {
		resp.Lab = &dto.LabConfigDTO{
			AccessMode: b.Lab.AccessMode,
			FixedHours: b.Lab.FixedHours,
			QuotaHours: b.Lab.QuotaHours,
			StartDate:  b.Lab.StartDate,
			EndDate:    b.Lab.EndDate,
		}
	}
	if b.Assessment != nil {
		resp.Assessment = &dto.AssessmentResponseDTO{
			Mode:    b.Assessment.Mode,
			Status:  b.Assessment.Status,
			StartAt: b.Assessment.StartAt,
			EndAt:   b.Assessment.EndAt,
		}
	}
	return resp
}
